package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"informativos-backend/models"

	"github.com/google/generative-ai-go/genai"
)

// DefaultGeminiModel is the model used when none is configured
const DefaultGeminiModel = "gemini-1.5-flash"

const geminiTemperature = 0.2

// TextGenerator turns a prompt into free text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator answers prompts with a Gemini model
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the named model
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{client: client, model: model}
}

// Generate sends the prompt and joins the text parts of every candidate
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(geminiTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", fmt.Errorf("gemini returned empty text (finish reason: %s)", resp.Candidates[0].FinishReason)
	}
	return answer, nil
}

// BuildPrompt combines the record context and the user's question into a model prompt
func BuildPrompt(records []models.Informativo, question string) string {
	var b strings.Builder
	b.WriteString("Você é um assistente jurídico especializado na jurisprudência do STF. ")
	b.WriteString("Responda em português, usando apenas as informações do contexto e citando o número do informativo.\n\n")
	b.WriteString(BuildContext(records))
	b.WriteString("Pergunta: ")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}
