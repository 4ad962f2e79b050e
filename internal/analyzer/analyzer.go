package analyzer

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"movie-sentiment-crawler/internal/models"
	"movie-sentiment-crawler/internal/observability"
)

var (
	ErrEmptyMovieName     = errors.New("movie name is required")
	ErrClassifierNotReady = errors.New("sentiment classifier is not ready")
	// ErrNoReviews should be unreachable given backfill; it is handled
	// defensively all the same.
	ErrNoReviews = errors.New("no reviews could be acquired")
)

// Acquirer is the review acquisition pipeline.
type Acquirer interface {
	Acquire(ctx context.Context, q models.MovieQuery) ([]models.Review, error)
}

// Classifier is the sentiment collaborator: a score in [0,1], above 0.5
// meaning positive.
type Classifier interface {
	Ready() bool
	Classify(text string) (float64, error)
}

// Analyzer runs acquisition followed by per-review classification and
// aggregates the counts into the response document.
type Analyzer struct {
	pipeline   Acquirer
	classifier Classifier
	log        zerolog.Logger
}

func New(p Acquirer, c Classifier, log zerolog.Logger) *Analyzer {
	return &Analyzer{pipeline: p, classifier: c, log: log.With().Str("component", "analyzer").Logger()}
}

func (a *Analyzer) Ready() bool {
	return a.classifier != nil && a.classifier.Ready()
}

// AnalyzeMovie acquires up to maxReviews reviews for name, classifies each
// and returns the aggregate. maxReviews <= 0 falls back to the default.
func (a *Analyzer) AnalyzeMovie(ctx context.Context, name string, maxReviews int) (models.AggregateResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.AggregateResult{}, ErrEmptyMovieName
	}
	if maxReviews <= 0 {
		maxReviews = models.DefaultTargetCount
	}
	if !a.Ready() {
		return models.AggregateResult{}, ErrClassifierNotReady
	}

	reviews, err := a.pipeline.Acquire(ctx, models.MovieQuery{Name: name, TargetCount: maxReviews})
	if err != nil {
		return models.AggregateResult{}, err
	}
	if len(reviews) == 0 {
		return models.AggregateResult{}, ErrNoReviews
	}

	return a.Aggregate(name, reviews), nil
}

// Aggregate classifies each review in place and computes the batch
// statistics. Reviews whose classification fails are labeled unknown and
// excluded from the positive/negative counts but still counted in the total.
func (a *Analyzer) Aggregate(name string, reviews []models.Review) models.AggregateResult {
	var positive, negative int
	for i := range reviews {
		score, err := a.classifier.Classify(reviews[i].Text)
		if err != nil {
			reviews[i].Sentiment = "unknown"
			reviews[i].Confidence = 0
			observability.Classifications.WithLabelValues("unknown").Inc()
			continue
		}
		reviews[i].Score = score
		if score > 0.5 {
			reviews[i].Sentiment = "positive"
			reviews[i].Confidence = round2(score * 100)
			positive++
		} else {
			reviews[i].Sentiment = "negative"
			reviews[i].Confidence = round2((1 - score) * 100)
			negative++
		}
		observability.Classifications.WithLabelValues(reviews[i].Sentiment).Inc()
	}

	total := len(reviews)
	res := models.AggregateResult{
		MovieName:     name,
		TotalReviews:  total,
		PositiveCount: positive,
		NegativeCount: negative,
		Reviews:       reviews,
	}
	if total > 0 {
		res.PositivePercent = round2(float64(positive) / float64(total) * 100)
		res.NegativePercent = round2(float64(negative) / float64(total) * 100)
	}
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
