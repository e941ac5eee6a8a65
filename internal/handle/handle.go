// Package handle exposes the classification pipeline over HTTP.
package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/parser"
	"avalanche-analyzer/internal/score"
)

type Handle struct {
	engs *classify.Engines
	// engineForKey builds an engine bound to a caller-supplied credential,
	// overriding the configured one. Wired in main.
	engineForKey func(name, key string) (classify.Engine, error)
	log          *zap.SugaredLogger
}

func New(engs *classify.Engines, engineForKey func(name, key string) (classify.Engine, error), log *zap.SugaredLogger) *Handle {
	return &Handle{engs: engs, engineForKey: engineForKey, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorKind labels a pipeline error for API consumers.
func errorKind(err error) string {
	var missing *parser.MissingFieldError
	var inconsistent *score.InconsistencyError
	switch {
	case errors.Is(err, classify.ErrTransport):
		return "transport"
	case errors.Is(err, parser.ErrMalformedPayload):
		return "malformed_payload"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.Is(err, score.ErrAmbiguousEvidence):
		return "ambiguous_evidence"
	case errors.Is(err, score.ErrInsufficientEvidence):
		return "insufficient_evidence"
	case errors.As(err, &inconsistent):
		return "inconsistent_classification"
	case errors.Is(err, score.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, score.ErrConfidenceOutOfRange):
		return "confidence_out_of_range"
	default:
		return "internal"
	}
}
