package utils

import (
	"time"

	"cloud.google.com/go/civil"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today is the local calendar date of the clock.
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}
