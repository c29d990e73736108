package models

// AvailabilityWindow is a single bookable interval. Start and end are
// RFC3339 UTC instants; windows are never mutated after creation.
type AvailabilityWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayBucket groups the windows whose start instant falls on one calendar
// date in the requester's timezone. Date is formatted YYYY-MM-DD.
type DayBucket struct {
	Date  string               `json:"date"`
	Slots []AvailabilityWindow `json:"slots"`
}

// MonthAvailability is the day-bucketed response for one requested month.
// DurationMs is nil when the upstream offers no durations (fully booked or
// no link configured), which is a valid non-error outcome.
type MonthAvailability struct {
	Days       []DayBucket `json:"days"`
	DurationMs *int64      `json:"durationMs,omitempty"`
}

// BookingInput is the inbound booking submission. StartTime and Duration are
// decoded loosely so validation can tell "missing or non-numeric" apart from
// a JSON decode failure and report the right error.
type BookingInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
	Timezone  string `json:"timezone"`
	StartTime any    `json:"startTime"`
	Duration  any    `json:"duration"`
}
