// Package translator provides the optional LLM-backed oracle that can
// stand in for the heuristic extract-and-build pipeline. It honors the
// engine.Translator contract: question text plus a rendering of the
// schema catalog in, SQL plus a chart recommendation out.
package translator

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/stocklens/stocklens/core/engine"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
)

const defaultModel = "gemini-2.0-flash"

// Gemini translates questions to SQL through the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
	log    *logging.Logger
}

// NewGemini creates a Gemini translator. The API key is required; the
// model falls back to a sensible default.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		log:    logging.New("translator:gemini"),
	}, nil
}

// Translate implements engine.Translator
func (g *Gemini) Translate(ctx context.Context, question string, catalog *engine.Catalog) (string, *engine.VizConfig, error) {
	prompt := BuildPrompt(question, catalog)

	g.log.Debugf("Calling %s for question: %s", g.model, question)

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.1),
		})
	if err != nil {
		return "", nil, fmt.Errorf("gemini request failed: %w", err)
	}

	sql, viz, err := ParseResponse(resp.Text())
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	g.log.Infof("Gemini produced SQL: %s", sql)
	return sql, viz, nil
}
