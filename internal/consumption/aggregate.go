package consumption

import (
	"fmt"
	"sort"
	"time"

	"seftali/internal/upstream"
)

// Bucket is one bar of the consumption chart.
type Bucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

const dateLayout = "2006-01-02"

// Monthly groups the daily series by calendar month (YYYY-MM), in ascending
// order. Rows with an unparseable date are skipped.
func Monthly(points []upstream.DailyConsumption) []Bucket {
	return group(points, func(d time.Time) string {
		return d.Format("2006-01")
	})
}

// Weekly groups the daily series by ISO week, labeled "2024-W05".
func Weekly(points []upstream.DailyConsumption) []Bucket {
	return group(points, func(d time.Time) string {
		year, week := d.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	})
}

func group(points []upstream.DailyConsumption, keyFn func(time.Time) string) []Bucket {
	totals := make(map[string]float64)
	for _, p := range points {
		d, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			continue
		}
		totals[keyFn(d)] += p.Qty
	}

	out := make([]Bucket, 0, len(totals))
	for label, total := range totals {
		out = append(out, Bucket{Label: label, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
