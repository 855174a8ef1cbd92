package jobs

import (
	"context"
	"log"

	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/anisgadi/roombooking/internal/service"
	"github.com/robfig/cron/v3"
)

// StartCompletionSweep persists the derived confirmed -> completed
// transition for elapsed bookings. Reads already derive completion from the
// clock; the sweep keeps the stored rows in line with it.
func StartCompletionSweep(c *cron.Cron, bookingRepo repository.BookingRepository, clock service.Clock) error {
	if clock == nil {
		clock = service.SystemClock
	}

	sweep := func() {
		n, err := bookingRepo.CompleteElapsed(context.Background(), clock())
		if err != nil {
			log.Printf("[Jobs] completion sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[Jobs] marked %d bookings completed", n)
		}
	}

	if _, err := c.AddFunc("@hourly", sweep); err != nil {
		return err
	}

	c.Start()
	// catch up on anything that elapsed while the service was down
	sweep()
	return nil
}
