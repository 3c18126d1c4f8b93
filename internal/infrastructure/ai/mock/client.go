// Package mock provides a deterministic AI client for development and tests
package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/nugamoto/v2/internal/ports/outbound"
)

// Client returns a canned recipe derived from the prompt. It lets the
// whole generation pipeline run without network access or an API key.
type Client struct{}

// NewClient creates a new mock AI client
func NewClient() *Client {
	return &Client{}
}

var _ outbound.AIClient = (*Client)(nil)

// Provider returns the provider identifier
func (c *Client) Provider() string {
	return "mock"
}

// Model returns the model identifier
func (c *Client) Model() string {
	return "mock-chef-v1"
}

// GenerateRecipe returns a deterministic recipe built from the prompt
func (c *Client) GenerateRecipe(_ context.Context, prompt string, constraints outbound.AIConstraints) (*outbound.AIRecipeResponse, error) {
	title := strings.TrimSpace(prompt)
	if title == "" {
		title = "Chef's Surprise"
	}
	if len(title) > 60 {
		title = title[:60]
	}

	servings := constraints.Servings
	if servings <= 0 {
		servings = 2
	}

	response := &outbound.AIRecipeResponse{
		Title:       fmt.Sprintf("Mock: %s", title),
		Description: fmt.Sprintf("A simple dish for %d, generated offline.", servings),
		Ingredients: []outbound.AIIngredient{
			{Name: "flour", Amount: 100 * float64(servings), Unit: "gram"},
			{Name: "egg", Amount: float64(servings), Unit: "piece"},
			{Name: "milk", Amount: 50 * float64(servings), Unit: "milliliter"},
		},
		Instructions: []string{
			"Whisk all ingredients into a smooth batter.",
			"Rest the batter for ten minutes.",
			"Cook portions in a hot pan until golden on both sides.",
		},
		Tags: append([]string{"mock"}, constraints.Dietary...),
	}
	return response, nil
}
