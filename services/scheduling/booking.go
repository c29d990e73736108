package scheduling

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"oroserver/hubspot"
	"oroserver/models"
	"oroserver/utils"

	"go.uber.org/zap"
)

// Book validates a booking submission and forwards it upstream. Validation
// happens entirely before the network call; a rejected booking is never
// retried, since duplicate submission could double-book the slot.
func (s *DefaultSchedulingService) Book(ctx context.Context, input models.BookingInput) ([]byte, error) {
	logger := utils.GetLogger()

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.TrimSpace(input.Email)
	if firstName == "" || lastName == "" || email == "" {
		return nil, NewValidationError("Missing required fields")
	}

	startTime, okStart := asFiniteMillis(input.StartTime)
	duration, okDuration := asFiniteMillis(input.Duration)
	if !okStart || !okDuration {
		return nil, NewValidationError("Invalid startTime/duration")
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	payload := hubspot.BookingPayload{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Notes:       strings.TrimSpace(input.Notes),
		FormFields:  []any{},
		Offline:     false,
		Locale:      "en",
		Timezone:    timezone,
		Duration:    duration,
		StartTime:   startTime,
		GuestEmails: []string{},
	}

	logger.Info("Book: submitting booking upstream",
		zap.Int64("startTime", startTime),
		zap.Int64("duration", duration),
		zap.String("timezone", timezone))

	return s.Upstream.CreateBooking(ctx, s.Slug, payload)
}

// asFiniteMillis coerces a loosely-decoded JSON value to a finite
// millisecond count. Numbers and numeric strings are accepted; NaN,
// infinities, booleans, nulls and everything else are not.
func asFiniteMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}
