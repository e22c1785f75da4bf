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

		collection := core.NewBaseCollection("courts")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "facility",
				Required:     true,
				CollectionId: facilities.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      255,
			},
			&core.SelectField{
				Name:      "surface",
				MaxSelect: 1,
				Values:    []string{"hardcourt", "wood", "synthetic", "grass"},
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
		collection, err := app.FindCollectionByNameOrId("courts")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
