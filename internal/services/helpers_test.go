package services

import (
	"testing"

	"facility-booking/config"

	_ "facility-booking/migrations"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/require"
)

// newTestApp bootstraps a throwaway app in a temp dir and applies the
// collection migrations.
func newTestApp(t *testing.T) core.App {
	t.Helper()

	app := core.NewBaseApp(core.BaseAppConfig{
		DataDir: t.TempDir(),
	})
	require.NoError(t, app.Bootstrap())
	t.Cleanup(func() {
		_ = app.ResetBootstrapState()
	})

	for _, migration := range core.AppMigrations.Items() {
		require.NoError(t, migration.Up(app))
	}

	return app
}

type bookingFixture struct {
	facilityID  string
	courtID     string
	slotID      string
	userID      string
	otherUserID string
}

func seedBookingData(t *testing.T, app core.App) bookingFixture {
	t.Helper()

	facilities, err := app.FindCollectionByNameOrId("facilities")
	require.NoError(t, err)
	facility := core.NewRecord(facilities)
	facility.Set("name", "โรงยิมกลาง")
	facility.Set("name_en", "Main Gym")
	facility.Set("active", true)
	require.NoError(t, app.Save(facility))

	courts, err := app.FindCollectionByNameOrId("courts")
	require.NoError(t, err)
	court := core.NewRecord(courts)
	court.Set("facility", facility.Id)
	court.Set("name", "Court 1")
	court.Set("surface", "hardcourt")
	court.Set("active", true)
	require.NoError(t, app.Save(court))

	slots, err := app.FindCollectionByNameOrId("time_slots")
	require.NoError(t, err)
	slot := core.NewRecord(slots)
	slot.Set("start", "09:00")
	slot.Set("end", "10:00")
	slot.Set("duration_minutes", 60)
	require.NoError(t, app.Save(slot))

	return bookingFixture{
		facilityID:  facility.Id,
		courtID:     court.Id,
		slotID:      slot.Id,
		userID:      newTestUser(t, app, "member1@example.edu"),
		otherUserID: newTestUser(t, app, "member2@example.edu"),
	}
}

func newTestUser(t *testing.T, app core.App, email string) string {
	t.Helper()

	users, err := app.FindCollectionByNameOrId("users")
	require.NoError(t, err)

	user := core.NewRecord(users)
	user.Set("email", email)
	user.Set("password", "secret-password-123")
	require.NoError(t, app.Save(user))

	return user.Id
}

func newTestAdmin(t *testing.T, app core.App) string {
	t.Helper()

	admins, err := app.FindCollectionByNameOrId("admins")
	require.NoError(t, err)

	admin := core.NewRecord(admins)
	admin.Set("email", "staff@example.edu")
	admin.Set("password", "secret-password-123")
	admin.Set("name", "Facility Staff")
	require.NoError(t, app.Save(admin))

	return admin.Id
}

func newTestReservationService(app core.App) *ReservationService {
	cfg := &config.Config{DefaultRate: 10000, Currency: "THB"}
	return NewReservationService(app, NewPricingService(app, cfg), nil, nil, cfg)
}
