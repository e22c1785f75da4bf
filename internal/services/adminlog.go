package services

import (
	"facility-booking/models"

	"github.com/pocketbase/pocketbase/core"
)

// AdminLogService owns the append-only admin_logs audit trail. Entries
// are never updated or deleted.
type AdminLogService struct {
	app core.App
}

func NewAdminLogService(app core.App) *AdminLogService {
	return &AdminLogService{app: app}
}

// AppendTx writes the audit row on the given app, usually the
// transaction the audited mutation runs in.
func (s *AdminLogService) AppendTx(txApp core.App, adminID, action, details, ip string) error {
	collection, err := txApp.FindCollectionByNameOrId("admin_logs")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("admin", adminID)
	record.Set("action", action)
	record.Set("details", details)
	record.Set("ip", ip)

	return txApp.Save(record)
}

// List returns the most recent audit entries, newest first.
func (s *AdminLogService) List(limit int) ([]models.AdminLogEntry, error) {
	records, err := s.app.FindRecordsByFilter(
		"admin_logs",
		"id != ''",
		"-created",
		limit,
		0,
	)
	if err != nil {
		return nil, err
	}

	entries := make([]models.AdminLogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, models.AdminLogEntry{
			ID:        record.Id,
			AdminID:   record.GetString("admin"),
			Action:    record.GetString("action"),
			Details:   record.GetString("details"),
			IP:        record.GetString("ip"),
			CreatedAt: record.GetDateTime("created").Time(),
		})
	}
	return entries, nil
}
