package services

import (
	"facility-booking/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// CatalogService exposes the bookable inventory: facilities, their
// courts and the daily slot grid.
type CatalogService struct {
	app core.App
}

func NewCatalogService(app core.App) *CatalogService {
	return &CatalogService{app: app}
}

// Facilities lists active facilities sorted by name.
func (s *CatalogService) Facilities() ([]models.Facility, error) {
	records, err := s.app.FindRecordsByFilter("facilities", "active = true", "name", -1, 0)
	if err != nil {
		return nil, err
	}

	facilities := make([]models.Facility, 0, len(records))
	for _, record := range records {
		facilities = append(facilities, models.Facility{
			ID:       record.Id,
			Name:     record.GetString("name"),
			NameEn:   record.GetString("name_en"),
			Location: record.GetString("location"),
			Active:   record.GetBool("active"),
		})
	}
	return facilities, nil
}

// Courts lists a facility's active courts.
func (s *CatalogService) Courts(facilityID string) ([]models.Court, error) {
	records, err := s.app.FindRecordsByFilter(
		"courts",
		"facility = {:facility} && active = true",
		"name",
		-1,
		0,
		dbx.Params{"facility": facilityID},
	)
	if err != nil {
		return nil, err
	}

	courts := make([]models.Court, 0, len(records))
	for _, record := range records {
		courts = append(courts, models.Court{
			ID:         record.Id,
			FacilityID: record.GetString("facility"),
			Name:       record.GetString("name"),
			Surface:    record.GetString("surface"),
			Active:     record.GetBool("active"),
		})
	}
	return courts, nil
}

// TimeSlots returns the daily slot grid in start order.
func (s *CatalogService) TimeSlots() ([]models.TimeSlot, error) {
	records, err := s.app.FindRecordsByFilter("time_slots", "id != ''", "start", -1, 0)
	if err != nil {
		return nil, err
	}

	slots := make([]models.TimeSlot, 0, len(records))
	for _, record := range records {
		slots = append(slots, models.TimeSlot{
			ID:              record.Id,
			Start:           record.GetString("start"),
			End:             record.GetString("end"),
			DurationMinutes: record.GetInt("duration_minutes"),
		})
	}
	return slots, nil
}
