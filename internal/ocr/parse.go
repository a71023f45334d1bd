// Package ocr turns recognised screenshot text into score entries and merges
// those entries into a roster.
package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"guild-tracker/internal/analytics"
	"guild-tracker/internal/domain"
)

var (
	// grouped thousands ("1,234,567", "2 000 000") or a bare run of 4+ digits
	damagePattern = regexp.MustCompile(`\d{1,3}(?:[,\s]\d{3})+|\d{4,}`)
	playsPattern  = regexp.MustCompile(`(?i)(\d+)\s*play`)
)

type ParseOptions struct {
	// Keywords are UI labels the recogniser picks up next to scores
	// ("Attack", "Times"). A line made only of keywords is never a name.
	Keywords []string
}

// SplitKeywords parses the comma separated keyword setting.
func SplitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ParseEntries scans recognised text laid out as a name line followed by a
// score line. Every line holding a damage figure yields one entry; its name
// comes from the line above, or the one above that, and falls back to
// "Member N" when neither looks like a name. NameSource records which rule
// applied so callers can flag guesses.
func ParseEntries(text string, opts ParseOptions) []domain.OCREntry {
	lines := splitLines(text)
	entries := make([]domain.OCREntry, 0)

	for i, line := range lines {
		score, plays, hasPlays := cutPlays(line)
		loc := damagePattern.FindStringIndex(score)
		if loc == nil {
			continue
		}

		entry := domain.OCREntry{
			Damage: analytics.ParseNumericInput(score[loc[0]:loc[1]]),
			Line:   i,
		}

		if hasPlays {
			entry.Plays = &plays
		} else if i+1 < len(lines) {
			if plays, ok := findPlays(withoutDamage(lines[i+1])); ok {
				entry.Plays = &plays
			}
		}

		switch {
		case usableName(lines, i-1, opts.Keywords):
			entry.Name, entry.NameSource = lines[i-1], domain.NameFromPreviousLine
		case usableName(lines, i-2, opts.Keywords):
			entry.Name, entry.NameSource = lines[i-2], domain.NameFromSecondLine
		default:
			entry.Name = fmt.Sprintf("Member %d", len(entries)+1)
			entry.NameSource = domain.NameSynthetic
		}

		entries = append(entries, entry)
	}

	return entries
}

func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func withoutDamage(line string) string {
	loc := damagePattern.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + " " + line[loc[1]:]
}

func findPlays(s string) (int64, bool) {
	m := playsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parsePlays(m[1]), true
}

// cutPlays removes the "<n> plays" marker from line and returns what is left
// along with the count. The marker goes first so a three digit count is not
// read as the last thousands group of the damage figure.
func cutPlays(line string) (string, int64, bool) {
	loc := playsPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, 0, false
	}
	return line[:loc[0]] + " " + line[loc[1]:], parsePlays(line[loc[2]:loc[3]]), true
}

func parsePlays(digits string) int64 {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return domain.MaxValue
	}
	return analytics.Clamp(n)
}

func usableName(lines []string, i int, keywords []string) bool {
	if i < 0 || i >= len(lines) {
		return false
	}
	line := lines[i]
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 {
		return false
	}
	return !onlyKeywords(line, keywords)
}

func onlyKeywords(line string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, field := range strings.Fields(line) {
		known := false
		for _, k := range keywords {
			if strings.EqualFold(field, k) {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}
