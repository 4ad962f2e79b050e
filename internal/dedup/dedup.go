package dedup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"movie-sentiment-crawler/internal/models"
)

// Near-duplicate suppression within a single extraction batch. Order
// preserving, first occurrence wins. The pairwise scan is quadratic on
// purpose: batches are bounded by the target count and the similarity
// heuristic needs full comparison.

const (
	prefixLen           = 150
	shortTextLen        = 200
	similarityThreshold = 0.85
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeKey lowercases, collapses whitespace and strips trailing sentence
// punctuation, so texts differing only in a trailing period collapse to the
// same key.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
	return strings.TrimRight(s, ".!?,;: ")
}

// Dedupe converts candidates into Reviews, dropping exact duplicates,
// identically truncated duplicates (same 150-char prefix) and near
// duplicates (token-set Jaccard above the threshold).
func Dedupe(candidates []models.RawCandidate) []models.Review {
	seenTexts := make(map[string]struct{}, len(candidates))
	seenPrefixes := make(map[string]struct{}, len(candidates))
	accepted := make([]string, 0, len(candidates))

	out := make([]models.Review, 0, len(candidates))
	for _, c := range candidates {
		key := normalizeKey(c.Text)
		if key == "" {
			continue
		}
		if _, ok := seenTexts[key]; ok {
			continue
		}
		prefix := keyPrefix(key)
		if _, ok := seenPrefixes[prefix]; ok {
			continue
		}
		if isNearDuplicate(key, accepted) {
			continue
		}

		seenTexts[key] = struct{}{}
		seenPrefixes[prefix] = struct{}{}
		accepted = append(accepted, key)

		author := c.Author
		if author == "" {
			author = "Anonymous"
		}
		out = append(out, models.Review{
			Text:   c.Text,
			Rating: c.Rating,
			Author: author,
		})
	}
	return out
}

func keyPrefix(key string) string {
	runes := []rune(key)
	if len(runes) <= prefixLen {
		return key
	}
	return string(runes[:prefixLen])
}

// isNearDuplicate compares key against every previously accepted key. Short
// pairs must match exactly; for anything longer the token-set Jaccard index
// decides.
func isNearDuplicate(key string, accepted []string) bool {
	n := utf8.RuneCountInString(key)
	for _, prev := range accepted {
		if n < shortTextLen && utf8.RuneCountInString(prev) < shortTextLen {
			if key == prev {
				return true
			}
			continue
		}
		if Similarity(key, prev) > similarityThreshold {
			return true
		}
	}
	return false
}

// Similarity is the Jaccard index over whitespace-delimited token sets,
// case-insensitive, 0.0 when either set is empty.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
