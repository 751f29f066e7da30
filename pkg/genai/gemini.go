package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const geminiEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
}

type GeminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type GeminiGenerationConfig struct {
	MaxOutputTokens int                   `json:"maxOutputTokens,omitempty"`
	ThinkingConfig  *GeminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type GeminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type GeminiRequest struct {
	Contents         []*GeminiContent        `json:"contents"`
	SafetySettings   []GeminiSafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

var geminiSafetySettings = []GeminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// GeminiGenerator calls the Gemini generateContent REST endpoint.
type GeminiGenerator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewGeminiGenerator(apiKey, model string, client *http.Client) *GeminiGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &GeminiGenerator{
		apiKey:   apiKey,
		model:    model,
		endpoint: fmt.Sprintf(geminiEndpointFormat, model),
		client:   client,
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, genReq *Request) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	parts := make([]*GeminiPart, 0, 2)
	if genReq.Image != nil {
		parts = append(parts, &GeminiPart{
			InlineData: &GeminiInlineData{
				MimeType: genReq.Image.MimeType,
				Data:     genReq.Image.Data,
			},
		})
	}
	parts = append(parts, &GeminiPart{Text: genReq.Prompt})

	payload := GeminiRequest{
		Contents: []*GeminiContent{{Parts: parts}},
	}
	if genReq.ApplySafetySettings {
		payload.SafetySettings = geminiSafetySettings
	}
	if genReq.MaxOutputTokens > 0 {
		payload.GenerationConfig = &GeminiGenerationConfig{
			MaxOutputTokens: genReq.MaxOutputTokens,
			ThinkingConfig:  &GeminiThinkingConfig{ThinkingBudget: genReq.MaxOutputTokens / 2},
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model, body %s", string(resBody))
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
