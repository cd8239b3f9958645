package alarm

import "errors"

// ErrAlarmNotFound is returned when no alarm is stored at a slot.
var ErrAlarmNotFound = errors.New("alarm not found")

type (
	// Minutes maps a minute key to the alarm description.
	Minutes map[string]string
	// Hours maps an hour key to the alarms set within that hour.
	Hours map[string]Minutes
	// Agenda maps a date to the alarms set on that day.
	// Empty hours and dates are never kept.
	Agenda map[string]Hours
)

// NewAgenda returns an empty agenda.
func NewAgenda() Agenda {
	return make(Agenda)
}

// Set stores the description at the slot, overwriting any previous one.
func (a Agenda) Set(slot Slot, description string) {
	hours, ok := a[slot.Date]
	if !ok {
		hours = make(Hours)
		a[slot.Date] = hours
	}

	minutes, ok := hours[slot.Hour]
	if !ok {
		minutes = make(Minutes)
		hours[slot.Hour] = minutes
	}

	minutes[slot.Minute] = description
}

// Get returns the description stored at the slot.
func (a Agenda) Get(slot Slot) (string, error) {
	description, ok := a[slot.Date][slot.Hour][slot.Minute]
	if !ok {
		return "", ErrAlarmNotFound
	}

	return description, nil
}

// Delete removes the alarm at the slot and prunes the hour and the date
// once they hold nothing else.
func (a Agenda) Delete(slot Slot) error {
	minutes, ok := a[slot.Date][slot.Hour]
	if !ok {
		return ErrAlarmNotFound
	}

	if _, ok = minutes[slot.Minute]; !ok {
		return ErrAlarmNotFound
	}

	delete(minutes, slot.Minute)

	if len(minutes) == 0 {
		delete(a[slot.Date], slot.Hour)
	}

	if len(a[slot.Date]) == 0 {
		delete(a, slot.Date)
	}

	return nil
}

// Len returns the number of alarms in the agenda.
func (a Agenda) Len() int {
	var count int

	for _, hours := range a {
		for _, minutes := range hours {
			count += len(minutes)
		}
	}

	return count
}

// Clone returns a deep copy of the agenda to avoid leaking internal references.
func (a Agenda) Clone() Agenda {
	cloned := make(Agenda, len(a))

	for date, hours := range a {
		clonedHours := make(Hours, len(hours))

		for hour, minutes := range hours {
			clonedMinutes := make(Minutes, len(minutes))

			for minute, description := range minutes {
				clonedMinutes[minute] = description
			}

			clonedHours[hour] = clonedMinutes
		}

		cloned[date] = clonedHours
	}

	return cloned
}

// Prune drops empty hours and dates, e.g. after decoding a hand-edited file.
func (a Agenda) Prune() {
	for date, hours := range a {
		for hour, minutes := range hours {
			if len(minutes) == 0 {
				delete(hours, hour)
			}
		}

		if len(hours) == 0 {
			delete(a, date)
		}
	}
}

// Alarm is a single agenda entry as reported to callers.
type Alarm struct {
	// Datetime is the timestamp the caller asked for, verbatim.
	Datetime string `json:"datetime"`
	// Description says what the alarm is for.
	Description string `json:"description"`
}
