package clock

import (
	"time"
)

// Clock supplies timestamps for journal records.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
