// Package httpapi exposes the question answering pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kestrel-labs/grounder/internal/llm"
	"github.com/kestrel-labs/grounder/internal/pipeline"
	"go.uber.org/zap"
)

// Handler serves the question answering endpoints.
type Handler struct {
	pipeline *pipeline.Pipeline
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHandler creates a handler over the given pipeline. Each request gets a
// deadline derived from timeout.
func NewHandler(p *pipeline.Pipeline, timeout time.Duration, logger *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{pipeline: p, timeout: timeout, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type askRequest struct {
	Question string `json:"question"`
	Provider string `json:"provider,omitempty"`
}

type askResponse struct {
	Answer   string `json:"answer"`
	Provider string `json:"provider"`
	Passages int    `json:"passages"`
}

// Ask runs one question cycle and returns the normalized answer.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		answer *pipeline.Answer
		err    error
	)
	if req.Provider != "" {
		answer, err = h.pipeline.AnswerWith(ctx, req.Question, llm.Provider(req.Provider))
	} else {
		answer, err = h.pipeline.Answer(ctx, req.Question)
	}
	if err != nil {
		h.logger.Error("ask failed", zap.String("question", req.Question), zap.Error(err))
		if errors.Is(err, llm.ErrUnsupportedProvider) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(askResponse{
		Answer:   answer.Text,
		Provider: string(answer.Provider),
		Passages: answer.Passages,
	})
}
