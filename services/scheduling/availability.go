package scheduling

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"oroserver/hubspot"
	"oroserver/models"
	"oroserver/utils"

	"go.uber.org/zap"
)

// MonthInfo resolves day-bucketed availability for one month in the given
// timezone. The upstream query is anchored on the real current instant, not
// on the queried month: the provider computes availability as a rolling
// window from the present.
func (s *DefaultSchedulingService) MonthInfo(ctx context.Context, month, timezone string) (*models.MonthAvailability, error) {
	logger := utils.GetLogger()

	year, monthNum, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, NewValidationError("Invalid timezone. Expected an IANA zone name.")
	}

	info, err := s.Upstream.FetchBookInfo(ctx, hubspot.BookInfoRequest{
		Slug:      s.Slug,
		NowMillis: s.now().UnixMilli(),
		Timezone:  timezone,
		Location:  s.Location,
	})
	if err != nil {
		return nil, err
	}

	durationMs, windows := shortestDuration(info)
	if durationMs == 0 {
		// No durations offered: fully booked or no link configured. Valid
		// outcome, not an error.
		logger.Debug("MonthInfo: upstream offered no durations", zap.String("month", month))
		return &models.MonthAvailability{Days: []models.DayBucket{}}, nil
	}

	days := BucketByLocalDay(windows, loc, year, monthNum)
	return &models.MonthAvailability{Days: days, DurationMs: &durationMs}, nil
}

// parseMonth validates a strict YYYY-MM month string.
func parseMonth(month string) (int, time.Month, error) {
	parts := strings.Split(month, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, NewValidationError("Invalid month format. Expected YYYY-MM.")
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return 0, 0, NewValidationError("Invalid month format. Expected YYYY-MM.")
	}
	monthNum, err := strconv.Atoi(parts[1])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return 0, 0, NewValidationError("Invalid month format. Expected YYYY-MM.")
	}
	return year, time.Month(monthNum), nil
}

// shortestDuration picks the canonical session duration for the month: the
// smallest numeric duration the upstream offers. Ties are impossible (map
// keys are unique); non-numeric keys are ignored. Returns 0 and no windows
// when the upstream offers no durations.
func shortestDuration(info *hubspot.BookInfo) (int64, []hubspot.Availability) {
	byDuration := info.LinkAvailability.ByDuration
	durations := make([]int64, 0, len(byDuration))
	keys := make(map[int64]string, len(byDuration))
	for key := range byDuration {
		d, err := strconv.ParseInt(key, 10, 64)
		if err != nil || d <= 0 {
			continue
		}
		durations = append(durations, d)
		keys[d] = key
	}
	if len(durations) == 0 {
		return 0, nil
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	shortest := durations[0]
	return shortest, byDuration[keys[shortest]].Availabilities
}
