package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"movie-sentiment-crawler/internal/analyzer"
)

type Handlers struct {
	Analyzer *analyzer.Analyzer
	Log      zerolog.Logger
}

type analyzeRequest struct {
	MovieName  string `json:"movie_name"`
	MaxReviews int    `json:"max_reviews"`
}

type healthResponse struct {
	Status      string `json:"status"` // ok | not_ready
	ModelLoaded bool   `json:"model_loaded"`
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Post("/analyze", h.analyze)
	s.mux.Get("/health", h.health)
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid payload", "body must be JSON with movie_name")
		return
	}

	res, err := h.Analyzer.AnalyzeMovie(r.Context(), req.MovieName, req.MaxReviews)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrEmptyMovieName):
			writeProblem(w, http.StatusBadRequest, "Invalid movie name", "movie_name must not be empty")
		case errors.Is(err, analyzer.ErrClassifierNotReady):
			writeProblem(w, http.StatusServiceUnavailable, "Classifier not ready", "sentiment model is not loaded")
		default:
			h.Log.Error().Err(err).Str("movie", req.MovieName).Msg("analyze failed")
			writeProblem(w, http.StatusInternalServerError, "Analysis failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "not_ready"}
	if h.Analyzer.Ready() {
		resp.Status = "ok"
		resp.ModelLoaded = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}
