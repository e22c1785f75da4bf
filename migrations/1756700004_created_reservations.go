package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}
		facilities, err := app.FindCollectionByNameOrId("facilities")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("reservations")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "user",
				Required:     true,
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "facility",
				Required:     true,
				CollectionId: facilities.Id,
				MaxSelect:    1,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"pending", "confirmed", "cancelled", "completed"},
			},
			&core.SelectField{
				Name:      "payment_status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"unpaid", "partial", "paid", "refunded"},
			},
			&core.DateField{
				Name:     "reserved_date",
				Required: true,
			},
			&core.NumberField{
				Name:    "subtotal",
				OnlyInt: true,
			},
			&core.NumberField{
				Name:    "total",
				OnlyInt: true,
			},
			&core.TextField{
				Name: "currency",
				Max:  3,
			},
			&core.TextField{
				Name: "ref_code",
				Max:  16,
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

		collection.AddIndex("idx_reservations_user", false, "user", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("reservations")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
