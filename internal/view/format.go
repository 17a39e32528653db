// Package view turns stats results into display grids. Numbers are stored
// unformatted everywhere else; precision and missing-value rules live here.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/stats"
)

// FormatNumber renders v with the given decimals. Zero decimals truncate,
// matching how whole-number counts have always been shown.
func FormatNumber(v float64, decimals int) string {
	if decimals <= 0 {
		return strconv.FormatFloat(math.Trunc(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// WeeklyValue renders a weekly stat. Missing values show as zero.
func WeeklyValue(c league.Category, v float64, ok bool) string {
	if !ok {
		v = 0
	}
	return FormatNumber(v, c.WeeklyDecimals)
}

// AverageValue renders a season average. Missing values show as "-".
func AverageValue(c league.Category, v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return FormatNumber(v, c.AverageDecimals)
}

// ExtremeValue renders a record book value: percentages with 3 decimals,
// counts as whole numbers.
func ExtremeValue(c league.Category, v float64) string {
	if c.IsPercentage() {
		return FormatNumber(v, 3)
	}
	return FormatNumber(v, 0)
}

// ExtremeText renders "<value> - <manager> - Week <n>".
func ExtremeText(c league.Category, e stats.Extreme) string {
	return fmt.Sprintf("%s - %s - Week %d", ExtremeValue(c, e.Value), e.Manager, e.Week)
}
