// Package analytics generates the display-only time series behind the
// dashboard charts. Values are synthetic but deterministic per metric, so
// the charts stay stable across reloads.
package analytics

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Metric is one selectable dashboard metric with its headline numbers.
type Metric struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Total  float64 `json:"total"`
	Change float64 `json:"change"`
}

// Point is one day's value in a metric series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series pairs a metric with its generated daily points.
type Series struct {
	Metric Metric  `json:"metric"`
	Points []Point `json:"points"`
}

// Metrics returns the dashboard metric catalog.
func Metrics() []Metric {
	return []Metric{
		{ID: "likes", Title: "Likes", Total: 128450, Change: 12.5},
		{ID: "comments", Title: "Comments", Total: 45230, Change: 8.2},
		{ID: "shares", Title: "Shares", Total: 28940, Change: 15.3},
		{ID: "saves", Title: "Saves", Total: 67820, Change: 9.8},
		{ID: "uploads", Title: "Uploads", Total: 3240, Change: 22.1},
		{ID: "acceptedPrompts", Title: "Accepted", Total: 18650, Change: 18.4},
		{ID: "rejectedPrompts", Title: "Rejected", Total: 1890, Change: -5.2},
		{ID: "modifications", Title: "Edits", Total: 5420, Change: 11.7},
		{ID: "withdraws", Title: "Withdrawals", Total: 38450, Change: 14.2},
		{ID: "recharges", Title: "Recharges", Total: 98200, Change: 25.8},
		{ID: "images", Title: "Images", Total: 42350, Change: 32.4},
		{ID: "videos", Title: "Videos", Total: 8920, Change: 45.6},
		{ID: "newUsers", Title: "New Users", Total: 1350, Change: 28.9},
	}
}

// MetricByID returns the metric with the given id, or false.
func MetricByID(id string) (Metric, bool) {
	for _, m := range Metrics() {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// GenerateSeries produces days of daily points ending at end, seeded from
// the metric id so the same metric always yields the same curve. The daily
// values trend upward with bounded noise and sum roughly to the headline
// total.
func GenerateSeries(m Metric, days int, end time.Time) Series {
	if days <= 0 {
		days = 30
	}

	rng := rand.New(rand.NewSource(seedFor(m.ID)))
	base := m.Total / float64(days)

	points := make([]Point, 0, days)
	start := end.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		// Mild upward drift plus ±20% jitter.
		drift := 1 + 0.4*float64(i)/float64(days)
		jitter := 0.8 + 0.4*rng.Float64()
		value := base * drift * jitter
		if value < 0 {
			value = 0
		}
		points = append(points, Point{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Value: float64(int(value*100)) / 100,
		})
	}

	return Series{Metric: m, Points: points}
}

func seedFor(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}
