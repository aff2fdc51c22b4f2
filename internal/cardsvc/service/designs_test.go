package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type stubGenerator struct {
	prompt string
	text   string
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func TestDesigns_NoGeneratorUsesSamples(t *testing.T) {
	svc := NewDesignService(nil)

	got, err := svc.Generate(context.Background(), DesignRequest{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultDesignCount)

	got, err = svc.Generate(context.Background(), DesignRequest{Count: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDesigns_CountLimit(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewDesignService(gen)

	_, err := svc.Generate(context.Background(), DesignRequest{Count: MaxDesignCount + 1})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, gen.prompt, "generator must not be called")
}

func TestDesigns_ParsesModelOutput(t *testing.T) {
	gen := &stubGenerator{text: "Sure! ```json\n" + `[{"id":"d1","name":"Bold","bgStyle":"gradient","bgColors":["#000000","#111111"],"textColor":"#ffffff","accentColor":"#ff0000"}]` + "\n```"}
	svc := NewDesignService(gen)

	got, err := svc.Generate(context.Background(), DesignRequest{
		Count:        1,
		BusinessData: card.BusinessCardData{Name: "Jane", Company: "Acme"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bold", got[0].Name)
	assert.Equal(t, []string{"#000000", "#111111"}, got[0].BackgroundColors)

	assert.Contains(t, gen.prompt, "generate 1 unique")
	assert.Contains(t, gen.prompt, "Name: Jane")
	assert.Contains(t, gen.prompt, "Company: Acme")
}

func TestDesigns_MalformedOutput(t *testing.T) {
	svc := NewDesignService(&stubGenerator{text: "I cannot help with that."})

	_, err := svc.Generate(context.Background(), DesignRequest{Count: 2})
	assert.ErrorIs(t, err, ErrMalformedDesigns)
}

func TestDesigns_GeneratorErrorPassesThrough(t *testing.T) {
	svc := NewDesignService(&stubGenerator{err: fmt.Errorf("%w: quota", ErrRateLimited)})

	_, err := svc.Generate(context.Background(), DesignRequest{Count: 2})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestMapGenAIError(t *testing.T) {
	assert.ErrorIs(t, mapGenAIError(genai.APIError{Code: 429, Message: "quota"}), ErrRateLimited)
	assert.ErrorIs(t, mapGenAIError(&genai.APIError{Code: 429}), ErrRateLimited)
	assert.ErrorIs(t, mapGenAIError(genai.APIError{Code: 402}), ErrPaymentRequired)

	err := mapGenAIError(genai.APIError{Code: 500})
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "design generation failed")

	assert.Contains(t, mapGenAIError(errBoom).Error(), "boom")
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-2.5-flash")
	assert.Error(t, err)
}
