package intent

import (
	"fmt"
	"math"
	"strconv"

	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/snapshot"
)

// earningsAnswer renders the on-device earnings reply from the snapshot.
// A query carrying a simple marker gets the two line form; everything
// else gets the full breakdown. Answer copy exists in Hindi and English;
// other locales get the English form.
func earningsAnswer(query string, snap snapshot.Snapshot, locale i18n.Locale) string {
	if containsAny(query, simpleMarkers) {
		return simpleEarnings(snap, locale)
	}
	return detailedEarnings(snap, locale)
}

func simpleEarnings(snap snapshot.Snapshot, locale i18n.Locale) string {
	today := rupees(snap.Today.Net)
	week := rupees(snap.CurrentWeek.WeeklyTotal)
	if locale == i18n.Hindi {
		return fmt.Sprintf("आज की कमाई %s है। इस हफ्ते की कुल कमाई %s है।", today, week)
	}
	return fmt.Sprintf("Today's earnings are %s. This week's total is %s.", today, week)
}

func detailedEarnings(snap snapshot.Snapshot, locale i18n.Locale) string {
	growth := snap.CurrentWeek.GrowthPercentage
	magnitude := strconv.FormatFloat(math.Abs(growth), 'f', 1, 64)

	if locale == i18n.Hindi {
		direction := "बढ़ी"
		if growth < 0 {
			direction = "घटी"
		}
		return fmt.Sprintf(
			"आज की कमाई: आय %s, खर्च %s, %d ट्रिप, कुल %s। "+
				"इस हफ्ते कुल %s कमाए, रोज़ाना औसत %s। "+
				"पिछले हफ्ते से कमाई %s प्रतिशत %s है। पिछले हफ्ते की कुल कमाई %s थी।",
			rupees(snap.Today.Revenue), rupees(snap.Today.Expenses), snap.Today.Trips,
			rupees(snap.Today.Net),
			rupees(snap.CurrentWeek.WeeklyTotal), rupees(snap.CurrentWeek.DailyAverage),
			magnitude, direction, rupees(snap.LastWeek.Net),
		)
	}

	direction := "an increase"
	if growth < 0 {
		direction = "a decrease"
	}
	return fmt.Sprintf(
		"Today you earned %s from %s revenue and %s expenses across %d trips. "+
			"This week's total is %s with a daily average of %s. "+
			"That is %s of %s percent over last week's %s.",
		rupees(snap.Today.Net), rupees(snap.Today.Revenue), rupees(snap.Today.Expenses),
		snap.Today.Trips,
		rupees(snap.CurrentWeek.WeeklyTotal), rupees(snap.CurrentWeek.DailyAverage),
		direction, magnitude, rupees(snap.LastWeek.Net),
	)
}

func rupees(amount int) string {
	return "₹" + strconv.Itoa(amount)
}
