package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-sentiment-crawler/internal/analyzer"
	"movie-sentiment-crawler/internal/config"
	"movie-sentiment-crawler/internal/extractor"
	"movie-sentiment-crawler/internal/httpserver"
	"movie-sentiment-crawler/internal/imdb"
	"movie-sentiment-crawler/internal/observability"
	"movie-sentiment-crawler/internal/pipeline"
	"movie-sentiment-crawler/internal/resolver"
	"movie-sentiment-crawler/internal/sentiment"
	"movie-sentiment-crawler/internal/synthetic"
)

func main() {
	cfg := config.Load()
	log := observability.NewLogger(cfg.AppEnv)
	reg := observability.InitRegistry()

	client := imdb.NewClient(cfg.FetchTimeout, cfg.SizeCap, cfg.FetchRPS)
	res := resolver.New(client, cfg.IMDbBase, log)
	ext := extractor.New(client, cfg.IMDbBase, log)
	gen := synthetic.New(time.Now().UnixNano())
	pipe := pipeline.New(res, ext, gen, log)

	clf, err := sentiment.Load(cfg.ModelDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.ModelDir).
			Msg("sentiment model not loaded; /analyze will return 503 until artifacts exist")
	}
	anl := analyzer.New(pipe, clf, log)

	srv := httpserver.New(log)
	srv.MountHandlers(&httpserver.Handlers{Analyzer: anl, Log: log})
	srv.Mount("/metrics", observability.MetricsHandler(reg))

	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Mux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
}
