// Package gemini_client is a minimal client for the generative-language
// generateContent endpoint. It is constructed once at startup and injected
// into the briefing gateway; transient failures are returned as errors for
// the caller to absorb or retry.
package gemini_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsroom/config"
	"newsroom/utils/errors"
)

type Client struct {
	httpClient *http.Client
	apiBase    string
	model      string
	apiKey     string
}

func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		apiBase:    strings.TrimSuffix(cfg.APIBase, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one text-in/text-out request and returns the first
// candidate's text. Empty output is reported as an error so callers can
// treat it like any other transient API failure.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.ExternalAPIError("failed to marshal generation request", err, nil)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.apiBase, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.ExternalAPIError("failed to build generation request", err, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.ExternalAPIError("generation request failed", err, map[string]interface{}{"model": c.model})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errors.ExternalAPIError(
			fmt.Sprintf("generation API returned status %d", resp.StatusCode),
			fmt.Errorf("%s", string(respBody)),
			map[string]interface{}{"model": c.model})
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.ExternalAPIError("failed to decode generation response", err, nil)
	}

	text := collectText(decoded)
	if text == "" {
		return "", errors.ExternalAPIError("generation API returned an empty response", nil,
			map[string]interface{}{"model": c.model})
	}

	return text, nil
}

func collectText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
