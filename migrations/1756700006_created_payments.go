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

		collection := core.NewBaseCollection("payments")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "reservation",
				Required:     true,
				CollectionId: reservations.Id,
				MaxSelect:    1,
			},
			&core.NumberField{
				Name:    "amount",
				OnlyInt: true,
			},
			&core.TextField{
				Name: "currency",
				Max:  3,
			},
			&core.SelectField{
				Name:      "method",
				MaxSelect: 1,
				Values:    []string{"slip_upload", "qr_code", "cash"},
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"pending", "succeeded", "failed"},
			},
			&core.JSONField{
				Name:    "metadata",
				MaxSize: 2000,
			},
			&core.DateField{
				Name: "reviewed_at",
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

		collection.AddIndex("idx_payments_reservation", false, "reservation", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("payments")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
