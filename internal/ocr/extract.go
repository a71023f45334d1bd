package ocr

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"guild-tracker/internal/domain"
)

var numberPattern = regexp.MustCompile(`\d{1,3}(?:[,\s]\d{3})*(?:\.\d+)?`)

// LargestNumber returns the biggest figure in a single-player screenshot,
// which is taken to be the score.
func LargestNumber(text string) (int64, bool) {
	text = playsPattern.ReplaceAllString(text, " ")

	var largest float64
	for _, match := range numberPattern.FindAllString(text, -1) {
		cleaned := strings.Join(strings.Fields(strings.ReplaceAll(match, ",", "")), "")
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		largest = max(largest, v)
	}

	switch {
	case largest < 1:
		return 0, false
	case largest >= float64(domain.MaxValue):
		return domain.MaxValue, true
	}
	return int64(math.Floor(largest)), true
}

// FindPlays looks for an "<n> Play(s)" marker anywhere in text.
func FindPlays(text string) (int64, bool) {
	return findPlays(text)
}
