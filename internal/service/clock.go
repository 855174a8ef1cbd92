package service

import "time"

// Clock supplies the current instant. Lifecycle decisions (cancellation
// windows, derived completion, review eligibility) go through an injected
// Clock so they stay deterministic in tests.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}
