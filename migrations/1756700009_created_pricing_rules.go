package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		facilities, err := app.FindCollectionByNameOrId("facilities")
		if err != nil {
			return err
		}
		courts, err := app.FindCollectionByNameOrId("courts")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("pricing_rules")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "facility",
				Required:     true,
				CollectionId: facilities.Id,
				MaxSelect:    1,
			},
			// Optional; empty means the rule covers the whole facility.
			&core.RelationField{
				Name:         "court",
				CollectionId: courts.Id,
				MaxSelect:    1,
			},
			&core.NumberField{
				Name:     "rate_per_hour",
				Required: true,
				OnlyInt:  true,
			},
			&core.BoolField{
				Name: "active",
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

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pricing_rules")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
