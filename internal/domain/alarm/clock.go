package alarm

import "time"

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local system time.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatTime renders t with TimestampLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimestampLayout)
}
