package service

import "github.com/anisgadi/roombooking/internal/models"

// FindConflicts returns the subset of existing bookings whose range overlaps
// candidate while in a blocking status. When re-checking an update to an
// existing booking, pass its id as excludeID so it never conflicts with
// itself; zero means no exclusion.
func FindConflicts(candidate models.TimeRange, existing []models.Booking, excludeID uint) []models.Booking {
	var conflicts []models.Booking
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !blocking(b.Status) {
			continue
		}
		if candidate.Overlaps(b.Range()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

func blocking(s models.BookingStatus) bool {
	return s == models.BookingPending || s == models.BookingConfirmed
}

func conflictIDs(bookings []models.Booking) []uint {
	ids := make([]uint, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
