package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-sentiment-crawler/internal/analyzer"
	"movie-sentiment-crawler/internal/models"
	"movie-sentiment-crawler/internal/pipeline"
	"movie-sentiment-crawler/internal/resolver"
	"movie-sentiment-crawler/internal/sentiment"
	"movie-sentiment-crawler/internal/synthetic"
)

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (string, error) {
	return "", resolver.ErrNotFound
}

type emptyExtractor struct{}

func (emptyExtractor) Extract(context.Context, string, int) []models.RawCandidate { return nil }

func loadedClassifier(t *testing.T) *sentiment.Classifier {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positive.txt"),
		[]byte("excellent\namazing\ngreat\nwonderful\noutstanding\nbrilliant\nmasterpiece\nmagnificent\ncaptivating\nenjoyed\nimpressive\nrecommend\nbest\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "negative.txt"),
		[]byte("boring\nbad\nterrible\ndisappointed\nweak\npoor\npredictable\nwaste\nwasted\ndisappointment\n"), 0o644))
	c, err := sentiment.Load(dir)
	require.NoError(t, err)
	return c
}

func newTestAPI(t *testing.T, clf analyzer.Classifier) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()
	pipe := pipeline.New(failingResolver{}, emptyExtractor{}, synthetic.New(3), log)
	anl := analyzer.New(pipe, clf, log)

	srv := New(log)
	srv.MountHandlers(&Handlers{Analyzer: anl, Log: log})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/analyze", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAnalyzeEndToEndSynthetic(t *testing.T) {
	ts := newTestAPI(t, loadedClassifier(t))

	resp := postAnalyze(t, ts, `{"movie_name":"Nonexistent Movie XYZ123","max_reviews":10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res models.AggregateResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	assert.Equal(t, "Nonexistent Movie XYZ123", res.MovieName)
	assert.Equal(t, 10, res.TotalReviews)
	require.Len(t, res.Reviews, 10)

	// Synthetic templates alternate positive/negative by position, and the
	// lexicon labels them accordingly once classified.
	for i, r := range res.Reviews {
		assert.True(t, r.Synthetic)
		want := "positive"
		if i%2 == 1 {
			want = "negative"
		}
		assert.Equal(t, want, r.Sentiment, "review %d", i)
	}
	assert.Equal(t, res.PositiveCount+res.NegativeCount, res.TotalReviews)
}

func TestAnalyzeEmptyMovieName(t *testing.T) {
	ts := newTestAPI(t, loadedClassifier(t))
	resp := postAnalyze(t, ts, `{"movie_name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}

func TestAnalyzeInvalidPayload(t *testing.T) {
	ts := newTestAPI(t, loadedClassifier(t))
	resp := postAnalyze(t, ts, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeClassifierNotReady(t *testing.T) {
	notReady, _ := sentiment.Load(t.TempDir())
	ts := newTestAPI(t, notReady)

	resp := postAnalyze(t, ts, `{"movie_name":"The Matrix"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestAPI(t, loadedClassifier(t))
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h struct {
		Status      string `json:"status"`
		ModelLoaded bool   `json:"model_loaded"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)
	assert.True(t, h.ModelLoaded)
}

func TestHealthNotReady(t *testing.T) {
	notReady, _ := sentiment.Load(t.TempDir())
	ts := newTestAPI(t, notReady)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "not_ready", h.Status)
}
