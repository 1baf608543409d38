// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

const (
	// DefaultGeminiModel is the embedding model used when none is configured.
	DefaultGeminiModel = "text-embedding-004"

	// DefaultDimension is the vector length of the default model.
	DefaultDimension = 768
)

// GeminiProvider generates embeddings via the Gemini API. Construction
// performs client setup once; callers manage the provider's lifetime and
// pass it explicitly rather than relying on ambient state.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewGeminiProvider builds a provider from config. The API key is
// required; its absence is a construction error, surfaced before any
// pipeline work begins.
func NewGeminiProvider(ctx context.Context, cfg types.EmbeddingConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set: required for embeddings")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	return &GeminiProvider{
		client:    client,
		model:     model,
		dimension: dimension,
	}, nil
}

// Embed returns the embedding vector for text.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini embedding request: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("Gemini returned no embedding values")
	}
	return resp.Embeddings[0].Values, nil
}

// Dimension returns the expected vector length.
func (p *GeminiProvider) Dimension() int { return p.dimension }

// ModelName returns the embedding model identifier.
func (p *GeminiProvider) ModelName() string { return p.model }
