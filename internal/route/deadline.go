package route

import (
	"strings"
	"time"
)

// Info describes the next delivery route cycle for a customer. Deadline and
// DeadlineLate are nil when the current cycle's cut-off has already passed,
// so callers never show a stale countdown.
type Info struct {
	Label        string     `json:"label"`
	RouteDate    time.Time  `json:"route_date"`
	Deadline     *time.Time `json:"deadline"`
	DeadlineLate *time.Time `json:"deadline_late"`
	Diff         int        `json:"diff"`
}

const (
	deadlineHour = 16
	graceWindow  = 30 * time.Minute
)

var weekdayByCode = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
	"SUN": time.Sunday,
}

var labelByCode = map[string]string{
	"MON": "Pazartesi",
	"TUE": "Salı",
	"WED": "Çarşamba",
	"THU": "Perşembe",
	"FRI": "Cuma",
	"SAT": "Cumartesi",
	"SUN": "Pazar",
}

// Next computes the upcoming route cycle from the customer's weekday codes.
// The route date is the nearest future occurrence of any listed weekday,
// never today (minimum offset 1 day). Unknown codes are skipped; an empty or
// all-unknown set yields nil.
func Next(routeDays []string, now time.Time) *Info {
	var (
		days   []time.Weekday
		labels []string
	)
	for _, code := range routeDays {
		wd, ok := weekdayByCode[strings.ToUpper(code)]
		if !ok {
			continue
		}
		days = append(days, wd)
		labels = append(labels, labelByCode[strings.ToUpper(code)])
	}
	if len(days) == 0 {
		return nil
	}

	best := 8
	for _, wd := range days {
		offset := (int(wd) - int(now.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		if offset < best {
			best = offset
		}
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	routeDate := midnight.AddDate(0, 0, best)

	deadline := time.Date(routeDate.Year(), routeDate.Month(), routeDate.Day(), deadlineHour, 0, 0, 0, routeDate.Location())
	deadline = deadline.AddDate(0, 0, -1)
	deadlineLate := deadline.Add(graceWindow)

	info := &Info{
		Label:     strings.Join(labels, ", "),
		RouteDate: routeDate,
		Diff:      best,
	}
	if now.Before(deadlineLate) {
		info.Deadline = &deadline
		info.DeadlineLate = &deadlineLate
	}
	return info
}
