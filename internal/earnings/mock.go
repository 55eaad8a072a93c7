package earnings

import (
	"context"
	"log/slog"
)

// MockOverview returns the demo figures shown before a backend is reachable.
func MockOverview() Overview {
	return Overview{
		Today:    Summary{Revenue: 1250, Expenses: 300, Trips: 8, NetEarnings: 950},
		LastWeek: Summary{Revenue: 7800, Expenses: 2100, Trips: 55, NetEarnings: 5700},
	}
}

// MockWeekly returns the demo current-week figures.
func MockWeekly() Weekly {
	return Weekly{
		WeeklyData: []Daily{
			{DayName: "Monday", Revenue: 1600, Expenses: 280, Trips: 9, NetEarnings: 1320},
			{DayName: "Tuesday", Revenue: 1750, Expenses: 330, Trips: 10, NetEarnings: 1420},
			{DayName: "Wednesday", Revenue: 1500, Expenses: 250, Trips: 8, NetEarnings: 1250},
			{DayName: "Thursday", Revenue: 1820, Expenses: 360, Trips: 11, NetEarnings: 1460},
			{DayName: "Friday", Revenue: 1950, Expenses: 400, Trips: 12, NetEarnings: 1550},
			{DayName: "Saturday", Revenue: 2100, Expenses: 450, Trips: 13, NetEarnings: 1650},
			{DayName: "Sunday", Revenue: 1250, Expenses: 250, Trips: 8, NetEarnings: 1000},
		},
		CurrentWeek:      Summary{Revenue: 11970, Expenses: 2320, Trips: 71, NetEarnings: 9650},
		PreviousWeek:     Summary{Revenue: 10600, Expenses: 2100, Trips: 64, NetEarnings: 8500},
		GrowthPercentage: 13.5,
	}
}

// Resilient wraps a Source so backend failures degrade to mock figures
// instead of failing the dispatch cycle.
type Resilient struct {
	Primary Source
	Logger  *slog.Logger
}

func (r Resilient) Overview(ctx context.Context) (Overview, error) {
	if r.Primary != nil {
		overview, err := r.Primary.Overview(ctx)
		if err == nil {
			return overview, nil
		}
		r.logFallback("overview", err)
	}
	return MockOverview(), nil
}

func (r Resilient) Weekly(ctx context.Context) (Weekly, error) {
	if r.Primary != nil {
		weekly, err := r.Primary.Weekly(ctx)
		if err == nil {
			return weekly, nil
		}
		r.logFallback("weekly", err)
	}
	return MockWeekly(), nil
}

func (r Resilient) logFallback(endpoint string, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn("earnings backend unavailable; using demo figures",
		"endpoint", endpoint,
		"error", err.Error(),
	)
}
