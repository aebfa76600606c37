package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-01-08 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 8, hour, minute, 0, 0, time.UTC)
}

func TestNext_SingleDayMidWeek(t *testing.T) {
	// route day Wednesday, asked on Monday 10:00
	info := Next([]string{"WED"}, monday(10, 0))

	assert.NotNil(t, info)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), info.RouteDate)
	assert.Equal(t, 2, info.Diff)
	assert.Equal(t, "Çarşamba", info.Label)

	assert.NotNil(t, info.Deadline)
	assert.Equal(t, time.Date(2024, 1, 9, 16, 0, 0, 0, time.UTC), *info.Deadline)
	assert.Equal(t, info.Deadline.Add(30*time.Minute), *info.DeadlineLate)
}

func TestNext_SameWeekdayRollsToNextWeek(t *testing.T) {
	// asked on the route day itself: today never counts
	info := Next([]string{"MON"}, monday(10, 0))

	assert.NotNil(t, info)
	assert.Equal(t, 7, info.Diff)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), info.RouteDate)
}

func TestNext_TieBreakPicksSoonest(t *testing.T) {
	wednesday := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	info := Next([]string{"MON", "FRI"}, wednesday)

	assert.NotNil(t, info)
	assert.Equal(t, 2, info.Diff)
	assert.Equal(t, time.Friday, info.RouteDate.Weekday())
	assert.Equal(t, "Pazartesi, Cuma", info.Label)
}

func TestNext_EmptySet(t *testing.T) {
	assert.Nil(t, Next(nil, monday(10, 0)))
	assert.Nil(t, Next([]string{}, monday(10, 0)))
	assert.Nil(t, Next([]string{"XXX"}, monday(10, 0)))
}

func TestNext_PastGraceSuppressesDeadline(t *testing.T) {
	// route Wednesday, asked Tuesday 17:00: cut-off (Tue 16:30) already passed
	tuesday := time.Date(2024, 1, 9, 17, 0, 0, 0, time.UTC)

	info := Next([]string{"WED"}, tuesday)

	assert.NotNil(t, info)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), info.RouteDate)
	assert.Nil(t, info.Deadline)
	assert.Nil(t, info.DeadlineLate)
}

func TestNext_InsideGraceKeepsDeadline(t *testing.T) {
	// Tuesday 16:15 is inside the 30 minute grace window
	tuesday := time.Date(2024, 1, 9, 16, 15, 0, 0, time.UTC)

	info := Next([]string{"WED"}, tuesday)

	assert.NotNil(t, info)
	assert.NotNil(t, info.Deadline)
}

func TestNext_RouteDateAlwaysStrictlyInFuture(t *testing.T) {
	codes := []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

	for _, code := range codes {
		for dayOffset := 0; dayOffset < 7; dayOffset++ {
			now := monday(10, 0).AddDate(0, 0, dayOffset)
			info := Next([]string{code}, now)

			assert.NotNil(t, info)
			assert.True(t, info.RouteDate.After(now), "route date must be after now")
			assert.GreaterOrEqual(t, info.Diff, 1)
			assert.LessOrEqual(t, info.Diff, 7)
			assert.Equal(t, weekdayByCode[code], info.RouteDate.Weekday())
		}
	}
}

func TestNext_DeadlineRelation(t *testing.T) {
	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		now := monday(8, 0).AddDate(0, 0, dayOffset)
		info := Next([]string{"THU"}, now)

		assert.NotNil(t, info)
		if info.Deadline == nil {
			continue
		}
		expected := time.Date(info.RouteDate.Year(), info.RouteDate.Month(), info.RouteDate.Day(), 16, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		assert.Equal(t, expected, *info.Deadline)
		assert.Equal(t, info.Deadline.Add(30*time.Minute), *info.DeadlineLate)
	}
}
