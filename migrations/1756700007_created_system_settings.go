package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("system_settings")

		collection.Fields.Add(
			&core.TextField{
				Name:     "key",
				Required: true,
				Max:      100,
			},
			&core.JSONField{
				Name:    "value",
				MaxSize: 2000,
			},
			// Optimistic-concurrency token; writers bump it and guard
			// their UPDATE with the value they read.
			&core.NumberField{
				Name:    "revision",
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

		collection.AddIndex("idx_system_settings_key", true, "key", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("system_settings")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
