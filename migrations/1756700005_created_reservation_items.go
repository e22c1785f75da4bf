package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		reservations, err := app.FindCollectionByNameOrId("reservations")
		if err != nil {
			return err
		}
		courts, err := app.FindCollectionByNameOrId("courts")
		if err != nil {
			return err
		}
		slots, err := app.FindCollectionByNameOrId("time_slots")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("reservation_items")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "reservation",
				Required:      true,
				CollectionId:  reservations.Id,
				MaxSelect:     1,
				CascadeDelete: true,
			},
			&core.RelationField{
				Name:         "court",
				Required:     true,
				CollectionId: courts.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "slot",
				Required:     true,
				CollectionId: slots.Id,
				MaxSelect:    1,
			},
			&core.DateField{
				Name:     "play_date",
				Required: true,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"reserved", "cancelled"},
			},
			&core.NumberField{
				Name:    "price",
				OnlyInt: true,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		// Source of truth for the double-booking invariant: at most one
		// reserved item per (court, slot, play_date).
		collection.AddIndex("idx_reservation_items_active_slot", true,
			"court, slot, play_date", "status = 'reserved'")
		collection.AddIndex("idx_reservation_items_reservation", false, "reservation", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("reservation_items")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
