package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"travel_assistant/internal/adapters/observability"
	"travel_assistant/internal/domain"
)

const DefaultModel = "gemini-1.5-flash"

const extractPrompt = `Extrae los datos de esta oferta de viaje y responde solo con JSON con las claves:
title, category, city, country, price (número en COP), durationDays (entero),
regime (todo_incluido|pension_completa|media_pension|desayuno|solo_alojamiento),
includes, travelerTypes, amenities (listas de texto).
Deja vacío lo que no aparezca.

Oferta:
`

// generator is the slice of *genai.GenerativeModel the extractor needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Extractor struct {
	gen    generator
	closer func() error
}

func New(ctx context.Context, apiKey, model string) (*Extractor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0)
	return &Extractor{gen: m, closer: client.Close}, nil
}

// NewWithGenerator is used by tests to bypass the network client.
func NewWithGenerator(g generator) *Extractor { return &Extractor{gen: g} }

func (e *Extractor) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer()
}

func (e *Extractor) ExtractPlan(ctx context.Context, text string) (domain.PlanDraft, error) {
	var draft domain.PlanDraft
	if strings.TrimSpace(text) == "" {
		return draft, errors.New("gemini: empty offer text")
	}

	start := time.Now()
	resp, err := e.gen.GenerateContent(ctx, genai.Text(extractPrompt+text))
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("gemini", "extract_plan", status, time.Since(start))
	if err != nil {
		return draft, fmt.Errorf("gemini generate error: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		return draft, errors.New("gemini: empty response")
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &draft); err != nil {
		return draft, fmt.Errorf("gemini: decode draft: %w", err)
	}
	return draft, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

// stripFences drops a ```json ... ``` wrapper some models add despite the MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
