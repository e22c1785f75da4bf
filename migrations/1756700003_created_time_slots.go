package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("time_slots")

		collection.Fields.Add(
			&core.TextField{
				Name:     "start",
				Required: true,
				Pattern:  `^\d{2}:\d{2}$`,
			},
			&core.TextField{
				Name:     "end",
				Required: true,
				Pattern:  `^\d{2}:\d{2}$`,
			},
			&core.NumberField{
				Name:     "duration_minutes",
				Required: true,
				OnlyInt:  true,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		collection.AddIndex("idx_time_slots_start", true, "start, end", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("time_slots")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
