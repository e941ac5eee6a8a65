package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/classify/gemini"
	"avalanche-analyzer/internal/classify/openai"
	"avalanche-analyzer/internal/config"
	"avalanche-analyzer/internal/handle"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()

	engines := &classify.Engines{}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.GeminiAPIKey != "" {
		engines.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	// Callers may send their own credential per request (the service holds
	// no key at all in that deployment mode).
	engineForKey := func(name, key string) (classify.Engine, error) {
		switch name {
		case "", "gpt", "openai":
			return openai.New(key, cfg.OpenAIModel), nil
		case "gemini":
			return gemini.New(key, cfg.GeminiModel), nil
		default:
			return nil, fmt.Errorf("unknown llm_name %q; use 'gpt' or 'gemini'", name)
		}
	}

	h := handle.New(engines, engineForKey, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/classify", h.Classify)

	addr := ":" + cfg.Port
	log.Infof("avalanche-analyzer listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
