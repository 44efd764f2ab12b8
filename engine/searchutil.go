package engine

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// cutStats counts, by reason, how many times a node returned early during
// the last search. It exists purely for reporting (UCI "info string" style
// diagnostics) and costs nothing on the hot path beyond a map increment.
type cutStats map[string]int

func (s *Searcher) bumpCut(reason string) {
	if s.cuts == nil {
		s.cuts = cutStats{}
	}
	s.cuts[reason]++
}

// StatsReport renders the last search's cutoff-reason counts sorted by
// reason name, so the output is stable across runs with identical inputs.
func (s *Searcher) StatsReport() string {
	if len(s.cuts) == 0 {
		return "no cutoffs recorded"
	}
	keys := maps.Keys(s.cuts)
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.cuts[k]))
	}
	return strings.Join(parts, " ")
}
