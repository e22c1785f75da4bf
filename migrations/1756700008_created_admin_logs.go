package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		admins, err := app.FindCollectionByNameOrId("admins")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("admin_logs")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "admin",
				Required:     true,
				CollectionId: admins.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "action",
				Required: true,
				Max:      100,
			},
			&core.TextField{
				Name: "details",
				Max:  1000,
			},
			&core.TextField{
				Name: "ip",
				Max:  45,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		collection.AddIndex("idx_admin_logs_action", false, "action", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("admin_logs")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
