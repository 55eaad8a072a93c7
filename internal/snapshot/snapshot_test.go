package snapshot

import (
	"context"
	"testing"

	"github.com/porter-saathi/saathi/internal/earnings"
	"github.com/stretchr/testify/require"
)

func TestBuildDerivesNetAndAverage(t *testing.T) {
	overview := earnings.Overview{
		Today:    earnings.Summary{Revenue: 1250, Expenses: 300, Trips: 8},
		LastWeek: earnings.Summary{Revenue: 7800, Expenses: 2100, Trips: 55},
	}
	weekly := earnings.Weekly{
		CurrentWeek:      earnings.Summary{NetEarnings: 9650},
		GrowthPercentage: 13.5,
		WeeklyData: []earnings.Daily{
			{DayName: "Monday", NetEarnings: 1320.4, Trips: 9},
		},
	}

	snap := Build(overview, weekly)
	require.Equal(t, 950, snap.Today.Net)
	require.Equal(t, 5700, snap.LastWeek.Net)
	require.Equal(t, 9650, snap.CurrentWeek.WeeklyTotal)
	require.Equal(t, 1379, snap.CurrentWeek.DailyAverage)
	require.Equal(t, 13.5, snap.CurrentWeek.GrowthPercentage)
	require.Len(t, snap.CurrentWeek.DailyBreakdown, 1)
	require.Equal(t, 1320, snap.CurrentWeek.DailyBreakdown[0].Net)
}

func TestBuildDefaultsAbsentFieldsToZero(t *testing.T) {
	snap := Build(earnings.Overview{}, earnings.Weekly{})
	require.Zero(t, snap.Today.Net)
	require.Zero(t, snap.LastWeek.Revenue)
	require.Zero(t, snap.CurrentWeek.WeeklyTotal)
	require.Zero(t, snap.CurrentWeek.DailyAverage)
	require.Zero(t, snap.CurrentWeek.GrowthPercentage)
	require.Empty(t, snap.CurrentWeek.DailyBreakdown)
}

func TestBuildKeepsNegativeGrowth(t *testing.T) {
	snap := Build(earnings.Overview{}, earnings.Weekly{GrowthPercentage: -7.25})
	require.Equal(t, -7.25, snap.CurrentWeek.GrowthPercentage)
}

func TestFetchUsesSource(t *testing.T) {
	snap, err := Fetch(context.Background(), earnings.Resilient{})
	require.NoError(t, err)
	require.Equal(t, 950, snap.Today.Net)
	require.Equal(t, 9650, snap.CurrentWeek.WeeklyTotal)
}
