package alarm

import (
	"errors"
	"fmt"
	"strings"
)

// TimestampLayout is the layout accepted by every alarm operation.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrMalformedTimestamp is returned when a timestamp cannot be split into
// date, hour and minute.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Slot addresses a single alarm in the agenda.
// Hour and Minute are kept verbatim and are not range checked.
type Slot struct {
	// Date is the calendar date, YYYY-MM-DD.
	Date string
	// Hour is the two-digit hour key.
	Hour string
	// Minute is the two-digit minute key.
	Minute string
}

// ParseSlot extracts the slot from a "YYYY-MM-DD HH:MM[:SS...]" timestamp.
// Everything after the minute is discarded.
func ParseSlot(timestamp string) (Slot, error) {
	date, clock, ok := strings.Cut(timestamp, " ")
	if !ok || date == "" || strings.Contains(clock, " ") {
		return Slot{}, fmt.Errorf("%w: %q: expected date and time separated by one space", ErrMalformedTimestamp, timestamp)
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Slot{}, fmt.Errorf("%w: %q: expected at least hour and minute", ErrMalformedTimestamp, timestamp)
	}

	return Slot{
		Date:   date,
		Hour:   parts[0],
		Minute: parts[1],
	}, nil
}

// String renders the slot back as "YYYY-MM-DD HH:MM".
func (s Slot) String() string {
	return s.Date + " " + s.Hour + ":" + s.Minute
}
