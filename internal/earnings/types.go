// Package earnings fetches driver earnings figures from the REST backend,
// falling back to demo figures when the backend is unreachable.
package earnings

import "context"

// Summary aggregates one period of earnings activity.
type Summary struct {
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Trips       int     `json:"trips"`
	NetEarnings float64 `json:"netEarnings"`
}

// Overview is the today/last-week response shape.
type Overview struct {
	Today    Summary `json:"today"`
	LastWeek Summary `json:"lastWeek"`
}

// Daily is one day inside the weekly breakdown.
type Daily struct {
	DayName     string  `json:"dayName"`
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Trips       int     `json:"trips"`
	NetEarnings float64 `json:"netEarnings"`
}

// Weekly is the current-week response shape.
type Weekly struct {
	WeeklyData       []Daily `json:"weeklyData"`
	CurrentWeek      Summary `json:"currentWeek"`
	PreviousWeek     Summary `json:"previousWeek"`
	GrowthPercentage float64 `json:"growthPercentage"`
}

// Source supplies earnings figures for snapshot assembly.
type Source interface {
	Overview(ctx context.Context) (Overview, error)
	Weekly(ctx context.Context) (Weekly, error)
}
