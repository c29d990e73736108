package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"oroserver/hubspot"
	"oroserver/models"
)

// BucketByLocalDay groups availability windows into calendar days keyed by
// the start instant's local date in loc. Windows with missing or inverted
// bounds are dropped, as are windows whose local date falls outside the
// requested month — near midnight or a DST transition a window can belong
// to an adjacent month in the requester's timezone and must be excluded,
// not misfiled.
//
// Pure function of its inputs; no HTTP anywhere near it.
func BucketByLocalDay(windows []hubspot.Availability, loc *time.Location, year int, month time.Month) []models.DayBucket {
	monthPrefix := fmt.Sprintf("%04d-%02d", year, int(month))

	type timedWindow struct {
		startMillis int64
		window      models.AvailabilityWindow
	}
	byDate := make(map[string][]timedWindow)

	for _, w := range windows {
		if w.StartMillisUtc == nil || w.EndMillisUtc == nil {
			continue
		}
		start := *w.StartMillisUtc
		end := *w.EndMillisUtc
		if end <= start {
			continue
		}
		dateKey := time.UnixMilli(start).In(loc).Format("2006-01-02")
		if !strings.HasPrefix(dateKey, monthPrefix) {
			continue
		}
		byDate[dateKey] = append(byDate[dateKey], timedWindow{
			startMillis: start,
			window: models.AvailabilityWindow{
				Start: time.UnixMilli(start).UTC().Format(time.RFC3339),
				End:   time.UnixMilli(end).UTC().Format(time.RFC3339),
			},
		})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]models.DayBucket, 0, len(dates))
	for _, date := range dates {
		entries := byDate[date]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].startMillis < entries[j].startMillis
		})
		slots := make([]models.AvailabilityWindow, 0, len(entries))
		for _, e := range entries {
			slots = append(slots, e.window)
		}
		days = append(days, models.DayBucket{Date: date, Slots: slots})
	}
	return days
}
