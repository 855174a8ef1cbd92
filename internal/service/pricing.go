package service

import (
	"time"

	"github.com/anisgadi/roombooking/internal/models"
)

func unitLength(unit models.RateUnit) (time.Duration, error) {
	switch unit {
	case models.RateHour:
		return time.Hour, nil
	case models.RateDay:
		return 24 * time.Hour, nil
	case models.RateWeek:
		return 7 * 24 * time.Hour, nil
	default:
		return 0, ErrInvalidRateUnit
	}
}

// ComputePrice bills partial units as full units: ceil(duration/unit) * amount.
// A valid TimeRange has positive duration, so the result is always at least
// one unit's worth.
func ComputePrice(amount float64, unit models.RateUnit, r models.TimeRange) (float64, error) {
	ul, err := unitLength(unit)
	if err != nil {
		return 0, err
	}

	d := r.Duration()
	units := int64(d / ul)
	if d%ul != 0 {
		units++
	}
	return float64(units) * amount, nil
}
