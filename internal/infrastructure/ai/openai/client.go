// Package openai provides an AI client backed by an OpenAI-compatible
// chat completions endpoint
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nugamoto/v2/internal/infrastructure/config"
	"github.com/nugamoto/v2/internal/ports/outbound"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls a chat completions endpoint and parses the structured
// recipe JSON the model is instructed to return.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

// NewClient creates a new OpenAI-compatible client from configuration
func NewClient(cfg *config.Config) *Client {
	baseURL := strings.TrimSuffix(cfg.AI.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		apiKey:      cfg.AI.APIKey,
		model:       cfg.AI.Model,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
	}
}

var _ outbound.AIClient = (*Client)(nil)

// Provider returns the provider identifier
func (c *Client) Provider() string {
	return "openai"
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	ResponseFmt *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type recipePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tags         []string `json:"tags"`
}

const systemPrompt = `You are a recipe generator. Respond with a single JSON object:
{"title": string, "description": string,
 "ingredients": [{"name": string, "amount": number, "unit": string}],
 "instructions": [string], "tags": [string]}
Use metric units (gram, milliliter, piece). No text outside the JSON.`

// GenerateRecipe asks the model for a recipe honoring the constraints
func (c *Client) GenerateRecipe(ctx context.Context, prompt string, constraints outbound.AIConstraints) (*outbound.AIRecipeResponse, error) {
	userPrompt := buildUserPrompt(prompt, constraints)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		ResponseFmt: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("provider error (%s): %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from provider", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	var payload recipePayload
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse recipe payload: %w", err)
	}
	if payload.Title == "" || len(payload.Ingredients) == 0 {
		return nil, fmt.Errorf("provider returned an incomplete recipe")
	}

	response := &outbound.AIRecipeResponse{
		Title:        payload.Title,
		Description:  payload.Description,
		Instructions: payload.Instructions,
		Tags:         payload.Tags,
	}
	for _, ing := range payload.Ingredients {
		response.Ingredients = append(response.Ingredients, outbound.AIIngredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return response, nil
}

func buildUserPrompt(prompt string, constraints outbound.AIConstraints) string {
	var b strings.Builder
	b.WriteString(prompt)

	if constraints.Servings > 0 {
		fmt.Fprintf(&b, "\nServings: %d", constraints.Servings)
	}
	if constraints.MaxKcal > 0 {
		fmt.Fprintf(&b, "\nMaximum calories per serving: %d", constraints.MaxKcal)
	}
	if len(constraints.Dietary) > 0 {
		fmt.Fprintf(&b, "\nDietary requirements: %s", strings.Join(constraints.Dietary, ", "))
	}
	if len(constraints.AvoidIngredients) > 0 {
		fmt.Fprintf(&b, "\nDo not use: %s", strings.Join(constraints.AvoidIngredients, ", "))
	}
	return b.String()
}
