package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel = "gemini-2.5-flash"
	maxErrorBodyBytes  = 512
	maxResponseBytes   = 1 << 20
)

type GeminiTagger struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiTagger(apiKey, model string, httpClient *http.Client) *GeminiTagger {
	if model == "" {
		model = DefaultGeminiModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GeminiTagger{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: httpClient,
	}
}

func (g *GeminiTagger) Name() string {
	return "gemini:" + g.model
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiTagger) Tags(ctx context.Context, input TagInput) ([]string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildTagPrompt(input)}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: gemini status %d: %s", ErrBadStatus, resp.StatusCode, truncateBody(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding gemini response: %v", ErrUnparsableResponse, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	tags := ParseTags(text.String())
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnparsableResponse, text.String())
	}
	return tags, nil
}

func truncateBody(b []byte) string {
	if len(b) > maxErrorBodyBytes {
		b = b[:maxErrorBodyBytes]
	}
	return string(b)
}
