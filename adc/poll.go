package adc

import (
	"errors"
	"time"
)

// ErrTimeout is returned when a configured Poller deadline expires while
// waiting for a hardware status flag.
var ErrTimeout = errors.New("adc: timed out waiting for hardware flag")

// Poller bounds the busy-wait loops on hardware status flags.
//
// The zero value busy-waits without a deadline, matching the hardware
// reference sequences: a stuck peripheral then causes an unbounded wait.
// Integrators that need bounded waits set Now (typically time.Now, or a
// fake clock in tests) and a Deadline.
type Poller struct {
	// Now reports the current time. When nil the Poller spins forever.
	Now func() time.Time

	// Deadline bounds each individual wait when Now is set. A zero or
	// negative deadline also disables the bound.
	Deadline time.Duration
}

// Wait spins until done reports true, or until the deadline expires.
func (p Poller) Wait(done func() bool) error {
	if p.Now == nil || p.Deadline <= 0 {
		for !done() {
		}
		return nil
	}

	limit := p.Now().Add(p.Deadline)
	for !done() {
		if p.Now().After(limit) {
			return ErrTimeout
		}
	}
	return nil
}
