// Package snapshot assembles the read-only screen-context summary that
// grounds every assistant response in the figures currently on screen.
package snapshot

import (
	"context"
	"math"

	"github.com/porter-saathi/saathi/internal/earnings"
)

// DayTotals summarizes one period in whole rupees.
type DayTotals struct {
	Revenue  int `json:"revenue"`
	Expenses int `json:"expenses"`
	Trips    int `json:"trips"`
	Net      int `json:"netEarnings"`
}

// DayEntry is one day of the current-week breakdown.
type DayEntry struct {
	DayName string `json:"dayName"`
	Net     int    `json:"netEarnings"`
	Trips   int    `json:"trips"`
}

// WeekTotals summarizes the current week.
type WeekTotals struct {
	WeeklyTotal      int        `json:"weeklyTotal"`
	DailyAverage     int        `json:"dailyAverage"`
	GrowthPercentage float64    `json:"growthPercentage"`
	DailyBreakdown   []DayEntry `json:"dailyBreakdown"`
}

// Snapshot is a point-in-time copy of the visible earnings data. It is
// freshly derived per dispatch and never mutated in place.
type Snapshot struct {
	Today       DayTotals  `json:"today"`
	LastWeek    DayTotals  `json:"lastWeek"`
	CurrentWeek WeekTotals `json:"currentWeek"`
}

// Build derives a snapshot from upstream earnings data. Absent upstream
// fields become zero; growth keeps its sign (negative = decline).
func Build(overview earnings.Overview, weekly earnings.Weekly) Snapshot {
	today := dayTotals(overview.Today)
	lastWeek := dayTotals(overview.LastWeek)

	weeklyTotal := roundRupees(weekly.CurrentWeek.NetEarnings)
	breakdown := make([]DayEntry, 0, len(weekly.WeeklyData))
	for _, day := range weekly.WeeklyData {
		breakdown = append(breakdown, DayEntry{
			DayName: day.DayName,
			Net:     roundRupees(day.NetEarnings),
			Trips:   day.Trips,
		})
	}

	return Snapshot{
		Today:    today,
		LastWeek: lastWeek,
		CurrentWeek: WeekTotals{
			WeeklyTotal:      weeklyTotal,
			DailyAverage:     roundRupees(weekly.CurrentWeek.NetEarnings / 7),
			GrowthPercentage: weekly.GrowthPercentage,
			DailyBreakdown:   breakdown,
		},
	}
}

// Fetch pulls fresh upstream data and derives a snapshot. Each dispatch
// cycle calls this so answers reflect the latest known numbers.
func Fetch(ctx context.Context, source earnings.Source) (Snapshot, error) {
	overview, err := source.Overview(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	weekly, err := source.Weekly(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Build(overview, weekly), nil
}

func dayTotals(summary earnings.Summary) DayTotals {
	revenue := roundRupees(summary.Revenue)
	expenses := roundRupees(summary.Expenses)
	return DayTotals{
		Revenue:  revenue,
		Expenses: expenses,
		Trips:    summary.Trips,
		Net:      revenue - expenses,
	}
}

func roundRupees(amount float64) int {
	return int(math.Round(amount))
}
