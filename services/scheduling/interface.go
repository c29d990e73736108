package scheduling

import (
	"context"
	"time"

	"oroserver/hubspot"
	"oroserver/models"
)

// SchedulingService brokers month availability and booking submissions
// through the upstream scheduling provider.
type SchedulingService interface {
	MonthInfo(ctx context.Context, month, timezone string) (*models.MonthAvailability, error)
	Book(ctx context.Context, input models.BookingInput) ([]byte, error)
}

// UpstreamAPI is the slice of the upstream client this service consumes.
type UpstreamAPI interface {
	FetchBookInfo(ctx context.Context, req hubspot.BookInfoRequest) (*hubspot.BookInfo, error)
	CreateBooking(ctx context.Context, slug string, payload hubspot.BookingPayload) ([]byte, error)
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Upstream UpstreamAPI
	Slug     string
	Location string
	// Now is the clock used as the upstream reference instant; tests
	// override it. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
