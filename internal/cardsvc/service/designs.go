package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avvvet/cardcraft-services/internal/card"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const (
	DefaultDesignCount = 20
	MaxDesignCount     = 40
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", mapGenAIError(err)
	}
	return resp.Text(), nil
}

func mapGenAIError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}
	switch code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %v", ErrPaymentRequired, err)
	}
	return fmt.Errorf("design generation failed: %w", err)
}

type DesignRequest struct {
	Count        int                   `json:"count"`
	BusinessData card.BusinessCardData `json:"businessData"`
}

type DesignService struct {
	generator Generator
}

// NewDesignService uses the offline sample designs when generator is nil.
func NewDesignService(generator Generator) *DesignService {
	return &DesignService{generator: generator}
}

// Generate returns count design variations, normalized to the classic shape.
func (s *DesignService) Generate(ctx context.Context, req DesignRequest) ([]card.Classic, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultDesignCount
	}
	if count > MaxDesignCount {
		return nil, fmt.Errorf("%w: count must be at most %d", ErrValidation, MaxDesignCount)
	}

	if s.generator == nil {
		return card.SampleDesigns(count), nil
	}

	log.Infof("generating %d design variations", count)
	text, err := s.generator.Generate(ctx, DesignPrompt(count, req.BusinessData))
	if err != nil {
		return nil, err
	}

	designs, err := card.ParseGenerated(text)
	if err != nil {
		log.Errorf("failed to parse AI response: %v", err)
		return nil, err
	}
	log.Infof("successfully generated %d designs", len(designs))
	return designs, nil
}

// DesignPrompt asks for a JSON array of count design objects.
func DesignPrompt(count int, d card.BusinessCardData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a professional business card designer, generate %d unique, creative business card design configurations. Each design should be distinct with different visual characteristics.\n\n", count)
	if d.Name != "" || d.Title != "" || d.Company != "" {
		b.WriteString("Business card details:\n")
		fmt.Fprintf(&b, "Name: %s\nTitle: %s\nCompany: %s\n\n", d.Name, d.Title, d.Company)
	}
	fmt.Fprintf(&b, `Return only a JSON array of %d designs. Each design object must have:
{
  "id": "unique-id",
  "name": "Design Name",
  "bgStyle": "gradient or solid",
  "bgColors": ["color1", "color2"],
  "textColor": "text color (valid hex code)",
  "accentColor": "accent color (valid hex code)",
  "layout": "layout type (split, centered, left-aligned)",
  "decoration": "decoration type (circles, lines, shapes, none)",
  "fontWeight": "font weight (normal, bold, light)",
  "borderStyle": "border style (none, solid, dashed, rounded)"
}

Make designs diverse: modern, vintage, minimal, bold, elegant, playful, professional, creative.
Use valid hex color codes for all colors.`, count)
	return b.String()
}
