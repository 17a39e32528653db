// Package seed builds the season table: it drives the scoreboard fetcher
// across the week range, normalizes every week and hands the finished table
// to a store.
package seed

import (
	"fmt"
	"sort"
	"strings"
)

// Result tracks counts from a season build.
type Result struct {
	WeeksFetched   int
	RecordsBuilt   int
	WeeksWithData  int
	Retries        int
	SkippedByCause map[string]int
}

// AddSkip counts one skipped fragment under its reason.
func (r *Result) AddSkip(reason error) {
	if r.SkippedByCause == nil {
		r.SkippedByCause = make(map[string]int)
	}
	r.SkippedByCause[reason.Error()]++
}

// Skipped returns the total number of skipped fragments.
func (r *Result) Skipped() int {
	n := 0
	for _, c := range r.SkippedByCause {
		n += c
	}
	return n
}

// Summary returns a human-readable summary of the build.
func (r *Result) Summary() string {
	s := fmt.Sprintf(
		"weeks=%d weeks_with_data=%d records=%d skipped=%d retries=%d",
		r.WeeksFetched, r.WeeksWithData, r.RecordsBuilt, r.Skipped(), r.Retries,
	)
	if len(r.SkippedByCause) == 0 {
		return s
	}
	causes := make([]string, 0, len(r.SkippedByCause))
	for reason, n := range r.SkippedByCause {
		causes = append(causes, fmt.Sprintf("%q=%d", reason, n))
	}
	sort.Strings(causes)
	return s + " causes=[" + strings.Join(causes, " ") + "]"
}
