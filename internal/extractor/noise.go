package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Static heuristic tables. Kept as data rather than inline conditions so the
// phrase lists can be tuned and tested on their own.
var (
	// navPhrases mark site chrome; any hit near the start of a block means
	// the block is navigation, not a review.
	navPhrases = []string{
		"menu",
		"release calendar",
		"top 250",
		"most popular movies",
		"browse movies",
		"box office",
		"showtimes",
		"community",
		"help",
	}

	// reviewVocabulary are words a genuine film review tends to contain,
	// with Russian equivalents for localized pages.
	reviewVocabulary = []string{
		"film", "movie", "character", "plot", "story",
		"actor", "director", "scene", "ending", "performance",
		"фильм", "сюжет", "актер", "режиссер", "сцена", "финал",
	}
)

const (
	minReviewLen      = 50
	longReviewLen     = 200
	navScanWindow     = 200
	maxURLOccurrences = 2
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeText collapses internal whitespace to single spaces and trims.
func normalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// IsReviewLike reports whether a normalized text block reads like a user
// review rather than navigation or boilerplate.
func IsReviewLike(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < minReviewLen {
		return false
	}

	lower := strings.ToLower(text)
	if hasNavPhrase(lower, navScanWindow) {
		return false
	}

	// Link lists masquerade as prose.
	if strings.Count(lower, "http") > maxURLOccurrences || strings.Count(lower, "www.") > maxURLOccurrences {
		return false
	}

	for _, w := range reviewVocabulary {
		if strings.Contains(lower, w) {
			return true
		}
	}
	// Long unstructured text without film vocabulary is tolerated as
	// likely genuine; short text without it is not.
	return n >= longReviewLen
}

// hasNavPhrase checks the first window runes of lower for any nav phrase.
func hasNavPhrase(lower string, window int) bool {
	head := lower
	if utf8.RuneCountInString(head) > window {
		runes := []rune(head)
		head = string(runes[:window])
	}
	for _, p := range navPhrases {
		if strings.Contains(head, p) {
			return true
		}
	}
	return false
}
