// Package gemini implements the classify.Engine on Google's Generative AI
// SDK, for callers who prefer Gemini over OpenAI for the vision exchange.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"avalanche-analyzer/internal/classify"
	"avalanche-analyzer/internal/util"
)

type Engine struct {
	apiKey string
	model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

// Analyze sends the rubric as a system instruction and the image as an inline
// blob, requesting JSON-only output. One exchange, no retries: the caller
// owns resilience.
func (e *Engine) Analyze(ctx context.Context, image []byte) (string, error) {
	if e.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		MaxOutputTokens:  ptrInt32(classify.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(classify.Rubric)},
	}

	mime := util.SniffImageMime(image)
	resp, err := m.GenerateContent(ctx,
		genai.Text("Return only the JSON object described by the instructions."),
		&genai.Blob{MIMEType: mime, Data: image},
	)
	if err != nil {
		return "", err
	}

	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini classify: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
