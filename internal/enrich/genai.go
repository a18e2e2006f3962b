package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/harrison/testforge/internal/models"
)

// analysisSchema constrains the model to the structured analysis shape.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"action":         {Type: genai.TypeString},
		"target":         {Type: genai.TypeString},
		"validationType": {Type: genai.TypeString},
		"expectedValue":  {Type: genai.TypeString},
		"url":            {Type: genai.TypeString},
	},
}

const analysisPrompt = `Analyze this expected test result and extract:
- action: the user action implied (e.g. "navigation", "click", "input")
- target: the element or page the expectation refers to
- validationType: one of "url", "text", "visibility", or "" if unclear
- expectedValue: the value the expectation compares against
- url: the destination URL for navigation expectations

Leave fields empty when the text does not determine them.

Expected result: %s`

// GenAI is an Analyzer backed by Google's Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
}

// NewGenAI creates a GenAI analyzer.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAI{client: client, model: model}, nil
}

// Analyze maps one expected-result text to a structured analysis.
// Any API or decoding failure is reported as ErrUnavailable so the caller
// stays fail-soft.
func (a *GenAI) Analyze(ctx context.Context, text string) (*models.Analysis, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(analysisPrompt, text), genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(result.Text()), &analysis); err != nil {
		return nil, fmt.Errorf("%w: undecodable response: %v", ErrUnavailable, err)
	}
	return &analysis, nil
}
