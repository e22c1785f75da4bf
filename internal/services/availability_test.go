package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"facility-booking/config"
	"facility-booking/internal/status"
	"facility-booking/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAutoOpen(t *testing.T) {
	openHour := 9

	cases := []struct {
		name   string
		hour   int
		isOpen bool
		want   bool
	}{
		{"closed before opening hour", 8, false, false},
		{"closed at opening hour", 9, false, true},
		{"closed after opening hour", 15, false, true},
		{"already open", 15, true, false},
		{"midnight", 0, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2025, 6, 2, tc.hour, 30, 0, 0, time.Local)
			st := models.SystemStatus{IsOpen: tc.isOpen}

			assert.Equal(t, tc.want, shouldAutoOpen(now, st, openHour))
		})
	}
}

func TestAvailabilityService_CachedStatus(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	service := &AvailabilityService{
		redis: db,
		cfg:   &config.Config{StatusCacheTTL: 5 * time.Second},
		now:   time.Now,
	}

	openedAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	st := models.SystemStatus{IsOpen: true, OpenedBy: "system", OpenedAt: &openedAt}
	data, err := json.Marshal(st)
	require.NoError(t, err)

	mock.ExpectGet("booking:system:status").SetVal(string(data))

	cached, ok := service.cachedStatus(context.Background())

	assert.True(t, ok)
	assert.True(t, cached.IsOpen)
	assert.Equal(t, "system", cached.OpenedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_CachedStatus_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	service := &AvailabilityService{
		redis: db,
		cfg:   &config.Config{StatusCacheTTL: 5 * time.Second},
		now:   time.Now,
	}

	mock.ExpectGet("booking:system:status").RedisNil()

	_, ok := service.cachedStatus(context.Background())

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityService_SetOpen_PersistsStatusAndAudit(t *testing.T) {
	app := newTestApp(t)
	adminID := newTestAdmin(t, app)

	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	mock.ExpectDel("booking:system:status").SetVal(1)

	cfg := &config.Config{AutoOpenHour: 9, StatusCacheTTL: 5 * time.Second}
	adminLog := NewAdminLogService(app)
	service := NewAvailabilityService(app, db, nil, adminLog, cfg)

	st, err := service.SetOpen(context.Background(), true, adminID, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, st.IsOpen)
	assert.Equal(t, adminID, st.OpenedBy)

	stored, revision, err := service.read()
	require.NoError(t, err)
	assert.True(t, stored.IsOpen)
	assert.Equal(t, int64(2), revision)

	logs, err := adminLog.List(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "BOOKING_SYSTEM_OPEN", logs[0].Action)
	assert.Equal(t, adminID, logs[0].AdminID)
	assert.Equal(t, "203.0.113.9", logs[0].IP)
}

func TestAvailabilityService_SetOpen_RollsBackWhenAuditFails(t *testing.T) {
	app := newTestApp(t)

	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	cfg := &config.Config{AutoOpenHour: 9, StatusCacheTTL: 5 * time.Second}
	service := NewAvailabilityService(app, db, nil, NewAdminLogService(app), cfg)

	// The audit row references a missing admin, so the whole toggle
	// must roll back.
	_, err := service.SetOpen(context.Background(), true, "ghost0admin0000", "203.0.113.9")
	require.Error(t, err)

	stored, revision, err := service.read()
	require.NoError(t, err)
	assert.False(t, stored.IsOpen)
	assert.Equal(t, int64(1), revision)
}

func TestAvailabilityService_Write_StaleRevision(t *testing.T) {
	app := newTestApp(t)

	cfg := &config.Config{AutoOpenHour: 9, StatusCacheTTL: 5 * time.Second}
	service := NewAvailabilityService(app, nil, nil, NewAdminLogService(app), cfg)

	require.NoError(t, service.ensureInitialized())

	err := service.write(app, models.SystemStatus{IsOpen: true}, 99)
	assert.ErrorIs(t, err, status.ErrStaleRevision)
}

func TestAvailabilityService_CacheStatus(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	service := &AvailabilityService{
		redis: db,
		cfg:   &config.Config{StatusCacheTTL: 5 * time.Second},
		now:   time.Now,
	}

	st := models.SystemStatus{IsOpen: false}
	data, err := json.Marshal(st)
	require.NoError(t, err)

	mock.ExpectSet("booking:system:status", data, 5*time.Second).SetVal("OK")

	service.cacheStatus(context.Background(), st)

	assert.NoError(t, mock.ExpectationsWereMet())
}
