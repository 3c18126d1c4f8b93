// Package ai provides the application layer for AI recipe generation.
// The prompt/response exchange is opaque: the service forwards to a
// provider client and records every round trip for audit.
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service implements outbound.AIService on top of one provider client.
type Service struct {
	client  outbound.AIClient
	outputs outbound.AIOutputRepository
	logger  *zap.Logger
}

// NewService creates a new AI service.
func NewService(
	client outbound.AIClient,
	outputs outbound.AIOutputRepository,
	logger *zap.Logger,
) outbound.AIService {
	return &Service{
		client:  client,
		outputs: outputs,
		logger:  logger.Named("ai-service"),
	}
}

// GenerateRecipe asks the provider for a recipe draft and records the
// exchange. A failed audit write does not fail the generation.
func (s *Service) GenerateRecipe(ctx context.Context, prompt string, constraints outbound.AIConstraints) (*outbound.AIRecipeResponse, error) {
	prompt = strings.TrimSpace(prompt)
	requestID := uuid.New()

	s.logger.Info("Generating recipe",
		zap.String("request_id", requestID.String()),
		zap.String("provider", s.client.Provider()),
	)

	resp, err := s.client.GenerateRecipe(ctx, prompt, constraints)
	if err != nil {
		s.logger.Error("AI generation failed",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	resp.RequestID = requestID
	resp.Provider = s.client.Provider()
	resp.Model = s.client.Model()

	raw, _ := json.Marshal(resp)
	output := &outbound.AIModelOutput{
		RequestID:   requestID,
		Provider:    resp.Provider,
		Model:       resp.Model,
		Prompt:      prompt,
		RawResponse: string(raw),
	}
	if err := s.outputs.Create(ctx, output); err != nil {
		s.logger.Warn("Failed to record AI output",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
	}

	return resp, nil
}
