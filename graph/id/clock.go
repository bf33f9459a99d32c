package id

import "time"

// TimestampLayout is the layout of every bookkeeping timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000-07:00"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed time.
func (c FixedClock) Now() time.Time {
	return c.T
}

// Timestamp formats the clock's current time with TimestampLayout.
func Timestamp(c Clock) string {
	return c.Now().Format(TimestampLayout)
}

// FormatDate renders a record date the way it is stored on nodes:
// RFC 3339 in UTC with millisecond precision.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
