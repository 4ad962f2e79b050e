package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-sentiment-crawler/internal/imdb"
)

const reviewsPageHTML = `<!doctype html><html><body>
<nav><div class="text">Menu Release Calendar Top 250 Movies Most Popular Movies Browse Movies by Genre</div></nav>
<header>IMDb clone header</header>
<div class="lister-item-content">
  <span class="rating-other-user-rating"><span>9</span>/10</span>
  <span class="display-name-link">cinephile42</span>
  <div class="text">One of the best films I have seen this decade. The plot unfolds patiently and every character feels lived in, right up to the ending.</div>
</div>
<div class="lister-item-content">
  <span class="ipl-rating-star__rating">85</span>
  <div class="text">A weaker movie than the first one. The story sags in the middle and the director leans too hard on flashbacks to carry the plot forward.</div>
</div>
<div class="lister-item-content">
  <div class="text">Short.</div>
</div>
<footer>Footer chrome</footer>
</body></html>`

const genericContainerHTML = `<!doctype html><html><body>
<div class="user-review-card">
  <div class="content">An underrated film with a quietly devastating final act. The lead actor disappears into the role and the plot never once loses its nerve.</div>
  <span class="author">moviegoer</span>
</div>
</body></html>`

const structuralOnlyHTML = `<!doctype html><html><body>
<div class="review-block">
  <p>Stripped of the usual markup, this is still recognizably a review: the film takes a familiar story and finds something fresh in it, and the director keeps the plot moving even when the script stumbles in the second act.</p>
</div>
</body></html>`

const nestedRatingHTML = `<!doctype html><html><body>
<div class="review-container">
  <div class="ipl-rating-star"><span class="ipl-rating-star__fill"></span><span>7</span></div>
  <a class="display-name-link">quietwatcher</a>
  <div class="text">The movie builds its story out of small gestures, and the payoff in the final scene justifies every slow stretch that came before it.</div>
</div>
</body></html>`

func newTestExtractor(t *testing.T, html string, status int) *Extractor {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(ts.Close)
	client := imdb.NewClient(5*time.Second, 1<<20, 100)
	return New(client, ts.URL, zerolog.Nop())
}

func TestExtractListerItems(t *testing.T) {
	e := newTestExtractor(t, reviewsPageHTML, http.StatusOK)

	got := e.Extract(context.Background(), "tt0133093", 10)
	require.Len(t, got, 2, "nav chrome and the too-short block must be filtered out")

	assert.Contains(t, got[0].Text, "One of the best films")
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 9, *got[0].Rating)
	assert.Equal(t, "cinephile42", got[0].Author)

	assert.Contains(t, got[1].Text, "A weaker movie")
	require.NotNil(t, got[1].Rating, "out-of-100 rating should be scaled down")
	assert.Equal(t, 8, *got[1].Rating)
	assert.Equal(t, DefaultAuthor, got[1].Author)
}

func TestExtractLimit(t *testing.T) {
	e := newTestExtractor(t, reviewsPageHTML, http.StatusOK)
	got := e.Extract(context.Background(), "tt0133093", 1)
	assert.Len(t, got, 1)
}

func TestExtractGenericReviewClassFallback(t *testing.T) {
	e := newTestExtractor(t, genericContainerHTML, http.StatusOK)
	got := e.Extract(context.Background(), "tt0000001", 5)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Text, "underrated film")
	assert.Nil(t, got[0].Rating)
	assert.Equal(t, "moviegoer", got[0].Author)
}

func TestExtractStructuralScanFallback(t *testing.T) {
	e := newTestExtractor(t, structuralOnlyHTML, http.StatusOK)
	got := e.Extract(context.Background(), "tt0000002", 5)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Text, "recognizably a review")
}

func TestExtractNestedRatingSpan(t *testing.T) {
	e := newTestExtractor(t, nestedRatingHTML, http.StatusOK)
	got := e.Extract(context.Background(), "tt0000003", 5)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 7, *got[0].Rating)
	assert.Equal(t, "quietwatcher", got[0].Author)
}

func TestExtractFetchFailureYieldsNothing(t *testing.T) {
	e := newTestExtractor(t, "", http.StatusNotFound)
	assert.Empty(t, e.Extract(context.Background(), "tt0133093", 5))
}

func TestExtractNonPositiveLimit(t *testing.T) {
	e := newTestExtractor(t, reviewsPageHTML, http.StatusOK)
	assert.Empty(t, e.Extract(context.Background(), "tt0133093", 0))
}
