package ocr

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/domain"
)

// Reconcile writes entries into a copy of roster. Names match exactly after
// trimming and case folding; entries naming nobody are reported, never
// created. A non-negative bossIndex targets that shadow boss (damage into
// d, plays into v), a negative one targets the destruction counter v2.
// Later entries overwrite earlier ones for the same member.
func Reconcile(entries []domain.OCREntry, roster []domain.Member, bossIndex int) domain.ReconcileReport {
	report := domain.ReconcileReport{
		Unmatched: []string{},
		Roster:    slices.Clone(roster),
	}
	if bossIndex >= domain.ShadowBossCount {
		return report
	}

	for _, entry := range entries {
		idx := findMember(report.Roster, entry.Name)
		if idx < 0 {
			name := strings.TrimSpace(entry.Name)
			report.Unmatched = append(report.Unmatched, name)
			if s, ok := Suggest(name, roster); ok {
				report.Suggestions = append(report.Suggestions, s)
			}
			continue
		}

		m := &report.Roster[idx]
		if bossIndex >= 0 {
			m.D[bossIndex] = analytics.Clamp(entry.Damage)
			if entry.Plays != nil {
				m.V[bossIndex] = analytics.Clamp(*entry.Plays)
			}
		} else {
			m.V2 = analytics.Clamp(entry.Damage)
		}
		report.Updated++
	}

	return report
}

func findMember(roster []domain.Member, name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(roster, func(m domain.Member) bool {
		return strings.EqualFold(strings.TrimSpace(m.Name), name)
	})
}

// Suggest finds the roster name closest to an unmatched OCR name, allowing
// roughly one edit per three characters.
func Suggest(name string, roster []domain.Member) (domain.NameSuggestion, bool) {
	if name == "" {
		return domain.NameSuggestion{}, false
	}
	limit := max(1, utf8.RuneCountInString(name)/3)
	needle := strings.ToLower(name)

	best := domain.NameSuggestion{Name: name, Distance: limit + 1}
	for _, m := range roster {
		candidate := strings.TrimSpace(m.Name)
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if d < best.Distance {
			best.Candidate, best.Distance = candidate, d
		}
	}
	if best.Candidate == "" {
		return domain.NameSuggestion{}, false
	}
	return best, true
}
