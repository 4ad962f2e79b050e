package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"movie-sentiment-crawler/internal/imdb"
	"movie-sentiment-crawler/internal/models"
)

// Markup on the reviews page is untrusted and drifts between site revisions,
// so every lookup below is a prioritized chain of selectors rather than a
// single schema. The extractor is best-effort: a broken container is skipped,
// never aborting the batch.

const nonContentSelectors = "nav, header, footer, script, style, aside"

var containerSelectors = []string{
	"div.lister-item-content",
	"div.review-container",
	"div.ipl-review",
}

var textSelectors = []string{
	"div.text",
	"div.content",
	"div.review-text",
}

var ratingSelectors = []string{
	"span.rating-other-user-rating",
	"span.ipl-rating-star__rating",
	"span.rating",
	"div.ipl-rating-star",
}

var authorSelectors = []string{
	"span.display-name-link",
	"a.display-name-link",
	"span.author",
}

var numberRe = regexp.MustCompile(`\d+`)

// DefaultAuthor is attached when no author element matches.
const DefaultAuthor = "Anonymous"

// Extractor pulls candidate review records out of a title's reviews page.
type Extractor struct {
	fetcher imdb.Fetcher
	base    string
	log     zerolog.Logger
}

func New(fetcher imdb.Fetcher, base string, log zerolog.Logger) *Extractor {
	return &Extractor{fetcher: fetcher, base: base, log: log.With().Str("component", "extractor").Logger()}
}

// Extract returns up to limit candidates for the given title identifier.
// It never fails: fetch or parse problems yield an empty slice.
func (e *Extractor) Extract(ctx context.Context, id string, limit int) []models.RawCandidate {
	if limit <= 0 {
		return nil
	}

	reviewsURL := fmt.Sprintf("%s/title/%s/reviews", e.base, id)
	doc, err := e.fetcher.GetDocument(ctx, reviewsURL)
	if err != nil {
		e.log.Warn().Err(err).Str("id", id).Msg("reviews fetch failed")
		return nil
	}

	// Strip site chrome up front to cut selector false positives.
	doc.Find(nonContentSelectors).Remove()

	containers := e.findContainers(doc, limit)
	if len(containers) == 0 {
		containers = e.structuralScan(doc, limit)
	}

	out := make([]models.RawCandidate, 0, len(containers))
	for _, c := range containers {
		if len(out) >= limit {
			break
		}
		if cand := extractCandidate(c); cand != nil {
			out = append(out, *cand)
		}
	}
	e.log.Info().Str("id", id).Int("candidates", len(out)).Msg("extraction done")
	return out
}

// findContainers tries each container selector in priority order and keeps
// the first selector whose matches include at least one review-like block.
// Later selectors are never consulted once an earlier one succeeds.
func (e *Extractor) findContainers(doc *goquery.Document, limit int) []*goquery.Selection {
	selectors := containerSelectors
	for _, sel := range selectors {
		if found := filterReviewLike(doc.Find(sel), limit); len(found) > 0 {
			return found
		}
	}
	// Generic fallback: any div whose class mentions "review".
	generic := doc.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.AttrOr("class", "")), "review")
	})
	return filterReviewLike(generic, limit)
}

// filterReviewLike keeps containers whose text sub-element passes the noise
// filter, capped at limit.
func filterReviewLike(sel *goquery.Selection, limit int) []*goquery.Selection {
	var out []*goquery.Selection
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Find("div.text").First()
		if text.Length() == 0 {
			text = s.Find("div.content").First()
		}
		if text.Length() == 0 {
			return true
		}
		if IsReviewLike(normalizeText(text.Text())) {
			out = append(out, s)
		}
		return len(out) < limit
	})
	return out
}

// structuralScan is the last-resort container hunt: any div whose class
// mentions review or content and whose own text is plausibly review-sized.
func (e *Extractor) structuralScan(doc *goquery.Document, limit int) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		if !strings.Contains(class, "review") && !strings.Contains(class, "content") {
			return true
		}
		text := normalizeText(s.Text())
		n := utf8.RuneCountInString(text)
		if n <= 100 || n >= 5000 {
			return true
		}
		if !IsReviewLike(text) {
			return true
		}
		out = append(out, s)
		return len(out) < limit
	})
	return out
}

// extractCandidate pulls text, rating and author out of one container.
// Any panic inside the container is confined here and skips the candidate,
// preserving forward progress for the rest of the batch.
func extractCandidate(container *goquery.Selection) (cand *models.RawCandidate) {
	defer func() {
		if recover() != nil {
			cand = nil
		}
	}()

	container.Find(nonContentSelectors).Remove()

	text := findReviewText(container)
	if text == "" {
		return nil
	}
	// Redundant with container selection on purpose: defends against
	// selector drift between the container and text lookups.
	if !IsReviewLike(text) {
		return nil
	}

	return &models.RawCandidate{
		Text:   text,
		Rating: findRating(container),
		Author: findAuthor(container),
	}
}

// findReviewText walks the text selector chain, then falls back to scanning
// child paragraph and block elements directly.
func findReviewText(container *goquery.Selection) string {
	chains := make([]*goquery.Selection, 0, len(textSelectors)+1)
	for _, sel := range textSelectors {
		chains = append(chains, container.Find(sel).First())
	}
	chains = append(chains, container.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.AttrOr("class", "")), "text")
	}).First())

	for _, elem := range chains {
		if elem.Length() == 0 {
			continue
		}
		// Drop links and stray chrome inside the chosen element before
		// reading it.
		elem.Find("a, nav, header, footer").Remove()
		text := normalizeText(elem.Text())
		if IsReviewLike(text) {
			return text
		}
	}

	// Direct scan of child blocks.
	var found string
	container.Find("p, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := normalizeText(s.Text())
		n := utf8.RuneCountInString(text)
		if n <= 100 || n >= 5000 {
			return true
		}
		if !IsReviewLike(text) {
			return true
		}
		found = text
		return false
	})
	return found
}

// findRating walks the rating selector chain, pulling the first numeric
// token. Out-of-100 scales are divided down once; anything still outside
// [1,10] leaves the rating absent.
func findRating(container *goquery.Selection) *int {
	for _, sel := range ratingSelectors {
		elem := container.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		if r := parseRating(elem.Text()); r != nil {
			return r
		}
		// Some markups bury the number in a nested span.
		var nested *int
		elem.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			nested = parseRating(s.Text())
			return nested == nil
		})
		if nested != nil {
			return nested
		}
	}
	return nil
}

func parseRating(s string) *int {
	m := numberRe.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	if n > 10 {
		n /= 10
	}
	if n < 1 || n > 10 {
		return nil
	}
	return models.IntPtr(n)
}

func findAuthor(container *goquery.Selection) string {
	for _, sel := range authorSelectors {
		if name := strings.TrimSpace(container.Find(sel).First().Text()); name != "" {
			return name
		}
	}
	return DefaultAuthor
}
