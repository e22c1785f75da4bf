package services

import (
	"fmt"
	"log"

	"facility-booking/config"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

// PricingService resolves the hourly rate for a court from the
// pricing_rules collection. A court-specific rule wins over the
// facility-wide one; when nothing matches the configured default rate
// applies.
type PricingService struct {
	app core.App
	cfg *config.Config
}

func NewPricingService(app core.App, cfg *config.Config) *PricingService {
	return &PricingService{app: app, cfg: cfg}
}

// RatePerHour returns the rate in minor currency units.
func (s *PricingService) RatePerHour(facilityID, courtID string) int64 {
	rule, err := s.app.FindFirstRecordByFilter(
		"pricing_rules",
		"facility = {:facility} && court = {:court} && active = true",
		dbx.Params{"facility": facilityID, "court": courtID},
	)
	if err == nil {
		return int64(rule.GetInt("rate_per_hour"))
	}

	rule, err = s.app.FindFirstRecordByFilter(
		"pricing_rules",
		"facility = {:facility} && court = '' && active = true",
		dbx.Params{"facility": facilityID},
	)
	if err == nil {
		return int64(rule.GetInt("rate_per_hour"))
	}

	log.Printf("no pricing rule for facility %s court %s, using default rate", facilityID, courtID)
	return s.cfg.DefaultRate
}

// SlotPrice converts an hourly rate into the price of one slot of the
// given duration, rounded to whole minor units.
func SlotPrice(ratePerHour int64, durationMinutes int) (int64, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("pricing: invalid slot duration %d", durationMinutes)
	}

	rate := decimal.NewFromInt(ratePerHour)
	hours := decimal.NewFromInt(int64(durationMinutes)).Div(decimal.NewFromInt(60))

	return rate.Mul(hours).Round(0).IntPart(), nil
}
