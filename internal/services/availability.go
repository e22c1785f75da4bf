package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"facility-booking/config"
	"facility-booking/internal/status"
	"facility-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/redis/go-redis/v9"
)

const (
	SystemStatusKey = "booking_system_status"

	statusCacheKey = "booking:system:status"
)

// AvailabilityService owns the booking_system_status singleton: lazy
// initialization, the daily auto-open transition and the admin toggle.
// All persisted writes are guarded by the record's revision column so a
// concurrent auto-open and admin toggle cannot clobber each other.
type AvailabilityService struct {
	app      core.App
	redis    *redis.Client
	notifier *Notifier
	adminLog *AdminLogService
	cfg      *config.Config

	now func() time.Time
}

func NewAvailabilityService(app core.App, redisClient *redis.Client, notifier *Notifier, adminLog *AdminLogService, cfg *config.Config) *AvailabilityService {
	return &AvailabilityService{
		app:      app,
		redis:    redisClient,
		notifier: notifier,
		adminLog: adminLog,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Status returns the current system status, creating the default closed
// record on first use and applying the auto-open transition when the
// configured hour has passed. The read itself is pure; both mutations
// are explicit steps invoked here.
func (s *AvailabilityService) Status(ctx context.Context) (models.SystemStatus, error) {
	if cached, ok := s.cachedStatus(ctx); ok {
		return cached, nil
	}

	if err := s.ensureInitialized(); err != nil {
		return models.SystemStatus{}, fmt.Errorf("ensure system status: %w", err)
	}
	if err := s.applyAutoOpen(); err != nil {
		return models.SystemStatus{}, fmt.Errorf("auto-open system status: %w", err)
	}

	st, _, err := s.read()
	if err != nil {
		return models.SystemStatus{}, err
	}

	s.cacheStatus(ctx, st)
	return st, nil
}

// IsOpen answers the single question the reservation path cares about.
func (s *AvailabilityService) IsOpen(ctx context.Context) (bool, error) {
	st, err := s.Status(ctx)
	if err != nil {
		return false, err
	}
	return st.IsOpen, nil
}

// SetOpen is the admin toggle. It bumps the revision, appends an audit
// row and invalidates the cache.
func (s *AvailabilityService) SetOpen(ctx context.Context, open bool, adminID, ip string) (models.SystemStatus, error) {
	if err := s.ensureInitialized(); err != nil {
		return models.SystemStatus{}, err
	}

	_, revision, err := s.read()
	if err != nil {
		return models.SystemStatus{}, err
	}

	now := s.now()
	next := models.SystemStatus{
		IsOpen:   open,
		OpenedBy: adminID,
		OpenedAt: &now,
	}

	action := "BOOKING_SYSTEM_CLOSE"
	details := "ปิดระบบจองสนาม (booking system closed)"
	if open {
		action = "BOOKING_SYSTEM_OPEN"
		details = "เปิดระบบจองสนาม (booking system opened)"
	}

	err = s.app.RunInTransaction(func(txApp core.App) error {
		if err := s.write(txApp, next, revision); err != nil {
			return err
		}
		return s.adminLog.AppendTx(txApp, adminID, action, details, ip)
	})
	if err != nil {
		return models.SystemStatus{}, err
	}

	s.redis.Del(ctx, statusCacheKey)
	s.notifier.SystemToggled(open, adminID)

	return next, nil
}

// ensureInitialized lazily creates the default closed record.
func (s *AvailabilityService) ensureInitialized() error {
	_, err := s.app.FindFirstRecordByFilter(
		"system_settings",
		"key = {:key}",
		dbx.Params{"key": SystemStatusKey},
	)
	if err == nil {
		return nil
	}

	collection, err := s.app.FindCollectionByNameOrId("system_settings")
	if err != nil {
		return err
	}

	data, err := json.Marshal(models.SystemStatus{IsOpen: false})
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("key", SystemStatusKey)
	record.Set("value", types.JSONRaw(data))
	record.Set("revision", 1)

	if err := s.app.Save(record); err != nil {
		// A concurrent request may have created it first; the unique
		// key index makes that a no-op for us.
		if _, _, readErr := s.read(); readErr == nil {
			return nil
		}
		return err
	}
	return nil
}

// applyAutoOpen flips the flag to open once the configured local hour
// has passed. Only the open transition is automatic; closing is always
// an admin action.
func (s *AvailabilityService) applyAutoOpen() error {
	st, revision, err := s.read()
	if err != nil {
		return err
	}

	now := s.now()
	if !shouldAutoOpen(now, st, s.cfg.AutoOpenHour) {
		return nil
	}

	next := models.SystemStatus{
		IsOpen:   true,
		OpenedBy: "system",
		OpenedAt: &now,
	}
	if err := s.write(s.app, next, revision); err != nil {
		// Lost the race against another writer; the stored state wins.
		log.Printf("auto-open skipped: %v", err)
	}
	return nil
}

func (s *AvailabilityService) read() (models.SystemStatus, int64, error) {
	record, err := s.app.FindFirstRecordByFilter(
		"system_settings",
		"key = {:key}",
		dbx.Params{"key": SystemStatusKey},
	)
	if err != nil {
		return models.SystemStatus{}, 0, err
	}

	var st models.SystemStatus
	if raw := record.GetString("value"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			return models.SystemStatus{}, 0, fmt.Errorf("parse system status: %w", err)
		}
	}
	return st, int64(record.GetInt("revision")), nil
}

// write persists the status guarded by the revision read before. Zero
// affected rows means another writer got there first.
func (s *AvailabilityService) write(db core.App, st models.SystemStatus, revision int64) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	res, err := db.DB().NewQuery(
		"UPDATE system_settings SET value = {:value}, revision = revision + 1 WHERE key = {:key} AND revision = {:rev}",
	).Bind(dbx.Params{
		"value": string(data),
		"key":   SystemStatusKey,
		"rev":   revision,
	}).Execute()
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update %s: %w", SystemStatusKey, status.ErrStaleRevision)
	}
	return nil
}

func (s *AvailabilityService) cachedStatus(ctx context.Context) (models.SystemStatus, bool) {
	raw, err := s.redis.Get(ctx, statusCacheKey).Result()
	if err != nil {
		return models.SystemStatus{}, false
	}

	var st models.SystemStatus
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return models.SystemStatus{}, false
	}
	return st, true
}

func (s *AvailabilityService) cacheStatus(ctx context.Context, st models.SystemStatus) {
	data, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, statusCacheKey, data, s.cfg.StatusCacheTTL).Err(); err != nil {
		log.Printf("cache system status: %v", err)
	}
}

// shouldAutoOpen holds the auto-open decision: at/after the configured
// hour on the local clock, and only when not already open.
func shouldAutoOpen(now time.Time, st models.SystemStatus, openHour int) bool {
	return !st.IsOpen && now.Hour() >= openHour
}
