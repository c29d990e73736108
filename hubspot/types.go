package hubspot

import "fmt"

// BookInfo is the upstream book-info response, reduced to the fields the
// proxy consumes. Availability windows are nested under the session
// durations the meeting link offers.
type BookInfo struct {
	LinkAvailability LinkAvailability `json:"linkAvailability"`
}

type LinkAvailability struct {
	ByDuration map[string]DurationAvailability `json:"linkAvailabilityByDuration"`
}

type DurationAvailability struct {
	Availabilities []Availability `json:"availabilities"`
}

// Availability bounds are pointers so windows with missing fields can be
// detected and skipped instead of reading as epoch zero.
type Availability struct {
	StartMillisUtc *int64 `json:"startMillisUtc"`
	EndMillisUtc   *int64 `json:"endMillisUtc"`
}

// BookInfoRequest carries the query parameters of an availability fetch.
type BookInfoRequest struct {
	Slug      string
	NowMillis int64
	Timezone  string
	Location  string
}

// BookingPayload is the upstream booking submission body. Notes is omitted
// from the wire entirely when empty.
type BookingPayload struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Notes       string   `json:"notes,omitempty"`
	FormFields  []any    `json:"formFields"`
	Offline     bool     `json:"offline"`
	Locale      string   `json:"locale"`
	Timezone    string   `json:"timezone"`
	Duration    int64    `json:"duration"`
	StartTime   int64    `json:"startTime"`
	GuestEmails []string `json:"guestEmails"`
}

// UpstreamError reports a failed upstream call: a non-success status, an
// unparsable body, or a transport failure (StatusCode 0). The raw body is
// kept so callers can surface an actionable message.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream scheduling provider failure (status %d): %s", e.StatusCode, e.Body)
}
