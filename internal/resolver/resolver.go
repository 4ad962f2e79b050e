package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"movie-sentiment-crawler/internal/imdb"
)

// ErrNotFound is the only failure a Resolve call surfaces; network and
// parsing problems all degrade to it.
var ErrNotFound = errors.New("movie not found")

var titleIDRe = regexp.MustCompile(`/title/(tt\d+)`)

// selectorStrategies is tried in priority order; the first link whose href
// matches the canonical title-URL pattern wins, no ranking among candidates.
var selectorStrategies = []string{
	"td.result_text a",
	"li.find-result-item a",
	"div.find-result a",
	"a[href*='/title/tt']",
}

// Resolver turns a free-text movie name into a canonical title identifier
// by scanning the source site's search results page.
type Resolver struct {
	fetcher imdb.Fetcher
	base    string
	log     zerolog.Logger
}

func New(fetcher imdb.Fetcher, base string, log zerolog.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, base: base, log: log.With().Str("component", "resolver").Logger()}
}

// Resolve returns the identifier for name, or ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	searchURL := fmt.Sprintf("%s/find?q=%s&s=tt&ttype=ft", r.base, url.QueryEscape(name))
	doc, err := r.fetcher.GetDocument(ctx, searchURL)
	if err != nil {
		r.log.Warn().Err(err).Str("movie", name).Msg("search fetch failed")
		return "", ErrNotFound
	}

	for _, sel := range selectorStrategies {
		if id := firstTitleID(doc.Find(sel)); id != "" {
			r.log.Debug().Str("movie", name).Str("id", id).Str("selector", sel).Msg("resolved")
			return id, nil
		}
	}

	r.log.Info().Str("movie", name).Msg("no title link in search results")
	return "", ErrNotFound
}

// firstTitleID scans the selection in document order and returns the first
// identifier embedded in an href, or "".
func firstTitleID(sel *goquery.Selection) string {
	var id string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if m := titleIDRe.FindStringSubmatch(href); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id
}
