package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"movie-sentiment-crawler/internal/analyzer"
	"movie-sentiment-crawler/internal/config"
	"movie-sentiment-crawler/internal/extractor"
	"movie-sentiment-crawler/internal/imdb"
	"movie-sentiment-crawler/internal/models"
	"movie-sentiment-crawler/internal/observability"
	"movie-sentiment-crawler/internal/pipeline"
	"movie-sentiment-crawler/internal/resolver"
	"movie-sentiment-crawler/internal/sentiment"
	"movie-sentiment-crawler/internal/synthetic"
)

func main() {
	movie := flag.String("movie", "", "movie name to analyze")
	count := flag.Int("count", models.DefaultTargetCount, "target review count")
	modelDir := flag.String("model", "", "model directory (default from MODEL_DIR)")
	out := flag.String("output", "", "output file (default stdout)")
	ndjson := flag.Bool("ndjson", false, "emit one review per line instead of the aggregate document")
	flag.Parse()

	if *movie == "" {
		fmt.Fprintln(os.Stderr, "missing --movie")
		os.Exit(2)
	}

	cfg := config.Load()
	if *modelDir != "" {
		cfg.ModelDir = *modelDir
	}
	log := observability.NewLogger(cfg.AppEnv)

	client := imdb.NewClient(cfg.FetchTimeout, cfg.SizeCap, cfg.FetchRPS)
	res := resolver.New(client, cfg.IMDbBase, log)
	ext := extractor.New(client, cfg.IMDbBase, log)
	gen := synthetic.New(time.Now().UnixNano())
	pipe := pipeline.New(res, ext, gen, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	clf, err := sentiment.Load(cfg.ModelDir)
	if err != nil {
		log.Warn().Err(err).Msg("sentiment model not loaded; reviews will be unclassified")
	}

	var result models.AggregateResult
	if clf.Ready() {
		anl := analyzer.New(pipe, clf, log)
		result, err = anl.AnalyzeMovie(ctx, *movie, *count)
		if err != nil {
			fmt.Fprintln(os.Stderr, "analyze:", err)
			os.Exit(1)
		}
	} else {
		reviews, err := pipe.Acquire(ctx, models.MovieQuery{Name: *movie, TargetCount: *count})
		if err != nil {
			fmt.Fprintln(os.Stderr, "acquire:", err)
			os.Exit(1)
		}
		for i := range reviews {
			reviews[i].Sentiment = "unknown"
		}
		result = models.AggregateResult{MovieName: *movie, TotalReviews: len(reviews), Reviews: reviews}
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create output:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if *ndjson {
		for _, r := range result.Reviews {
			_ = enc.Encode(r)
		}
		return
	}
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}
