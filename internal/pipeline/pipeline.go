package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"movie-sentiment-crawler/internal/dedup"
	"movie-sentiment-crawler/internal/models"
	"movie-sentiment-crawler/internal/observability"
)

var (
	ErrEmptyName    = errors.New("movie name is empty")
	ErrInvalidCount = errors.New("target count must be positive")
)

// Resolver finds the canonical title identifier for a movie name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Extractor pulls candidate reviews for an identifier; it never fails.
type Extractor interface {
	Extract(ctx context.Context, id string, limit int) []models.RawCandidate
}

// Backfill generates synthetic reviews to top up short result sets.
type Backfill interface {
	Generate(name string, count int) []models.Review
}

// Orchestrator sequences resolve, extract, dedupe and backfill. Acquisition
// never fails outright because of source-site trouble: it degrades to fully
// synthetic content. Only input validation produces an error.
type Orchestrator struct {
	resolver  Resolver
	extractor Extractor
	backfill  Backfill
	log       zerolog.Logger
}

func New(r Resolver, e Extractor, b Backfill, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		resolver:  r,
		extractor: e,
		backfill:  b,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// Acquire returns exactly TargetCount reviews whenever achievable: scraped
// reviews first in extraction order, then backfill.
func (o *Orchestrator) Acquire(ctx context.Context, q models.MovieQuery) ([]models.Review, error) {
	if q.Name == "" {
		return nil, ErrEmptyName
	}
	if q.TargetCount <= 0 {
		return nil, ErrInvalidCount
	}

	id, err := o.resolver.Resolve(ctx, q.Name)
	if err != nil {
		o.log.Info().Str("movie", q.Name).Msg("title not resolved, using synthetic reviews")
		reviews := o.backfill.Generate(q.Name, q.TargetCount)
		observability.ReviewsAcquired.WithLabelValues("synthetic").Add(float64(len(reviews)))
		return reviews, nil
	}

	candidates := o.extractor.Extract(ctx, id, q.TargetCount)
	reviews := dedup.Dedupe(candidates)
	if len(reviews) > q.TargetCount {
		reviews = reviews[:q.TargetCount]
	}
	observability.ReviewsAcquired.WithLabelValues("scraped").Add(float64(len(reviews)))

	if missing := q.TargetCount - len(reviews); missing > 0 {
		o.log.Info().Str("movie", q.Name).Int("scraped", len(reviews)).Int("synthetic", missing).
			Msg("topping up with synthetic reviews")
		filler := o.backfill.Generate(q.Name, missing)
		observability.ReviewsAcquired.WithLabelValues("synthetic").Add(float64(len(filler)))
		reviews = append(reviews, filler...)
	}
	return reviews, nil
}
