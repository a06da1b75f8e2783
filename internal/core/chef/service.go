package chef

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// systemPromptFormat instructs the model to answer as a friendly chef, in a
// fixed shape the resolution pipeline can parse: a title, an "Ingredientes"
// bullet list and a numbered "Preparación" section.
const systemPromptFormat = `
Eres un chef experto y cercano que responde con recetas claras y fáciles de seguir.
Siempre saluda al usuario por su nombre (%s) de manera amigable.

**Formato de tu respuesta:**
1. Título con el nombre de la receta.
2. Sección "Ingredientes" → lista los ingredientes de manera simple.
3. Sección "Preparación" → pasos numerados, cortos y prácticos.
`

// Service generates recipe text through an OpenAI-compatible
// chat-completions API.
type Service struct {
	config *config.Config
	client *resty.Client
}

// NewService creates the recipe generation service.
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.OpenAI.BaseURL).
		SetTimeout(cfg.OpenAI.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenAI.APIKey))

	return &Service{
		config: cfg,
		client: client,
	}
}

// GenerateRecipe asks the model for a recipe answering the user's request.
// The returned text is free-form prose with the Ingredientes/Preparación
// sections the pipeline expects.
func (s *Service) GenerateRecipe(ctx context.Context, userName, request string) (string, error) {
	body := map[string]interface{}{
		"model": s.config.OpenAI.Model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": fmt.Sprintf(systemPromptFormat, userName),
			},
			{
				"role":    "user",
				"content": request,
			},
		},
		"max_tokens": s.config.OpenAI.MaxTokens,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call recipe API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("recipe API returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("model", s.config.OpenAI.Model),
		)
		return "", fmt.Errorf("recipe API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse recipe API response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty recipe API response")
	}

	common.LogInfo("recipe generated",
		zap.String("model", s.config.OpenAI.Model),
		zap.Int("content_length", len(result.Choices[0].Message.Content)),
	)
	return result.Choices[0].Message.Content, nil
}
