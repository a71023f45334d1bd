package analytics

import (
	"cmp"
	"slices"
	"strings"

	"guild-tracker/internal/domain"
)

// NextSort applies a header click to the previous sort state. Clicking the
// active column flips the order; a new column starts ascending for names
// and descending for numbers.
func NextSort(prev domain.SortState, key domain.SortKey, index int) domain.SortState {
	if prev.Key == key && prev.Index == index {
		next := prev
		if prev.Order == domain.SortAsc {
			next.Order = domain.SortDesc
		} else {
			next.Order = domain.SortAsc
		}
		return next
	}

	order := domain.SortDesc
	if key == domain.SortName {
		order = domain.SortAsc
	}
	return domain.SortState{Key: key, Order: order, Index: index}
}

// SortMembers returns a stably sorted copy of roster.
func SortMembers(roster []domain.Member, s domain.SortState, ctx Context) []domain.Member {
	out := slices.Clone(roster)
	if s.Key == domain.SortNone {
		return out
	}

	compare := func(a, b domain.Member) int {
		if s.Key == domain.SortName {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		return cmp.Compare(sortValue(a, s, ctx), sortValue(b, s, ctx))
	}

	slices.SortStableFunc(out, func(a, b domain.Member) int {
		if s.Order == domain.SortAsc {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

func sortValue(m domain.Member, s domain.SortState, ctx Context) int64 {
	switch s.Key {
	case domain.SortTotal:
		return Total(m, ctx)
	case domain.SortBoss:
		if !ctx.shadow() {
			return m.V2
		}
		if s.Index < 0 || s.Index >= domain.ShadowBossCount {
			return 0
		}
		return counters(m, ctx.Mode)[s.Index]
	}
	return 0
}

// FilterMembers keeps members whose name contains search (case-insensitive)
// and, for FilterRisk, whose completion is below the risk threshold.
func FilterMembers(roster []domain.Member, filter domain.Filter, search string, ctx Context) []domain.Member {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Member, 0, len(roster))
	for _, m := range roster {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		if filter == domain.FilterRisk && !ComputeStats(m, ctx).IsRisk {
			continue
		}
		out = append(out, m)
	}
	return out
}
