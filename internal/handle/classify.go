package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/util"
)

type ClassifyRequest struct {
	LLMName  string `json:"llm_name"`
	APIKey   string `json:"api_key"`
	ImageB64 string `json:"image_b64"`
}

type classifyError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Classify handles POST /v1/classify: one image in, one accepted analysis or
// one typed rejection out.
func (h *Handle) Classify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST only"})
		return
	}
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}

	img, err := base64.StdEncoding.DecodeString(util.StripDataURL(req.ImageB64))
	if err != nil || len(img) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad image_b64"})
		return
	}

	eng, err := h.pickEngine(req.LLMName, req.APIKey)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	deadline := 180 * time.Second
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), deadline)
	defer cancel()

	analysis, err := classify.New(eng).Classify(ctx, img)
	if err != nil {
		kind := errorKind(err)
		status := http.StatusUnprocessableEntity
		if kind == "transport" {
			status = http.StatusBadGateway
		}
		h.log.Infow("classification rejected", "engine", eng.Name(), "kind", kind, "err", err)
		writeJSON(w, status, classifyError{Error: err.Error(), Kind: kind})
		return
	}

	h.log.Infow("classification accepted",
		"engine", eng.Name(),
		"type", analysis.AvalancheType,
		"confidence", analysis.ConfidenceLevel)
	writeJSON(w, http.StatusOK, analysis)
}

func (h *Handle) pickEngine(name, key string) (classify.Engine, error) {
	if key != "" {
		if h.engineForKey == nil {
			return nil, errors.New("per-request api_key is not supported")
		}
		return h.engineForKey(name, key)
	}
	return h.engs.Get(name)
}
