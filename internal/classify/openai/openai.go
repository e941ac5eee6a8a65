// Package openai implements the classify.Engine against the OpenAI
// chat-completions vision API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/util"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

type Engine struct {
	apiKey   string
	model    string
	endpoint string
	httpc    *http.Client
}

func New(key, model string) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // TCP connect
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// Vision calls can take a while to first byte on large images.
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}
	return &Engine{
		apiKey:   strings.TrimSpace(key),
		model:    strings.TrimSpace(model),
		endpoint: defaultEndpoint,
		httpc:    &http.Client{Transport: tr},
	}
}

// WithEndpoint overrides the API endpoint (e.g. a proxy or a test server).
func (e *Engine) WithEndpoint(url string) *Engine {
	if url != "" {
		e.endpoint = url
	}
	return e
}

// WithHTTPClient overrides the internal HTTP client.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string { return "gpt" }

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type chatRequest struct {
	Model          string    `json:"model"`
	ResponseFormat any       `json:"response_format,omitempty"`
	Messages       []message `json:"messages"`
	MaxTokens      int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends the rubric and the image in a single user message and returns
// the raw reply content. Exactly one exchange, no retries.
func (e *Engine) Analyze(ctx context.Context, image []byte) (string, error) {
	if e.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}

	body := chatRequest{
		Model:          e.model,
		ResponseFormat: map[string]string{"type": "json_object"},
		Messages: []message{{
			Role: "user",
			Content: []any{
				textContent{Type: "text", Text: classify.Rubric},
				imageContent{Type: "image_url", ImageURL: imageURL{
					URL:    util.MakeImageDataURL(image),
					Detail: "high",
				}},
			},
		}},
		MaxTokens: classify.MaxTokens,
	}

	payload, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai classify %d: %s", resp.StatusCode, truncate(raw, 1024))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("openai classify: bad envelope: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai classify: no choices; body=%s", truncate(raw, 1024))
	}
	return out.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
