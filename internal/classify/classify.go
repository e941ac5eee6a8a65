package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"avalanche-analyzer/internal/parser"
	"avalanche-analyzer/internal/schema"
	"avalanche-analyzer/internal/score"
)

// ErrTransport covers connection failures, non-success status codes, and
// empty replies. Everything past the wire gets its own error type.
var ErrTransport = errors.New("transport failure")

// Classifier runs the full pipeline against one engine. It performs no
// retries and no caching; a caller wanting resilience composes it on top.
type Classifier struct {
	eng Engine
}

func New(eng Engine) *Classifier {
	return &Classifier{eng: eng}
}

func (c *Classifier) EngineName() string {
	return c.eng.Name()
}

// Classify performs exactly one exchange with the engine and returns either
// a validated analysis or a terminal error from the rejection taxonomy. The
// returned analysis is never partial: rejection discards it entirely.
func (c *Classifier) Classify(ctx context.Context, image []byte) (*schema.AvalancheAnalysis, error) {
	raw, err := c.eng.Analyze(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty reply from %s", ErrTransport, c.eng.Name())
	}

	analysis, err := parser.ParseAnalysis(raw)
	if err != nil {
		return nil, err
	}
	if err := score.Validate(analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}
