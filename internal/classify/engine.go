// Package classify turns an image into a validated avalanche analysis by way
// of a vision-capable model engine, the response parser, and the consistency
// scorer. One call, one network exchange, one terminal outcome.
package classify

import (
	"context"
	"errors"
)

// Engine is a vision model capable of answering the classification rubric.
// Analyze returns the raw reply text; decoding and validation happen here,
// not in the engine.
type Engine interface {
	Name() string
	Analyze(ctx context.Context, image []byte) (string, error)
}

// Engines is the registry of configured engines.
type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) Get(name string) (Engine, error) {
	switch name {
	case "", "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gpt' or 'gemini'")
	}
}
