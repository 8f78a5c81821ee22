package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/apperr"
)

// GeminiConfig selects the Gemini model and endpoint.
type GeminiConfig struct {
	APIKey     string
	Model      string
	APIVersion string
	// BaseURL overrides the public endpoint, used by tests and proxies.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiModel is a TextModel backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apperr.Configuration("Gemini API Key is missing. Please set it in .env")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: cfg.APIVersion,
			BaseURL:    cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfiguration, "Gemini client could not be created", err)
	}
	return &GeminiModel{client: client, model: cfg.Model}, nil
}

func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstreamUnavailable, upstreamMessage(err), err)
	}
	text := resp.Text()
	if text == "" {
		return "", apperr.New(apperr.KindUpstreamFormat, "AI response is empty")
	}
	return text, nil
}

func upstreamMessage(err error) string {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return "Gemini API request failed: " + err.Error()
		}
		apiErr = *ptr
	}
	msg := fmt.Sprintf("Gemini API error %d", apiErr.Code)
	if apiErr.Message != "" {
		msg += ": " + apiErr.Message
	}
	return msg
}
