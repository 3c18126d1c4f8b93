package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// AIOutputRepository implements outbound.AIOutputRepository using GORM
type AIOutputRepository struct {
	db *gorm.DB
}

// NewAIOutputRepository creates a new AI output repository
func NewAIOutputRepository(db *gorm.DB) *AIOutputRepository {
	return &AIOutputRepository{db: db}
}

var _ outbound.AIOutputRepository = (*AIOutputRepository)(nil)

// Create persists one AI round-trip audit record
func (r *AIOutputRepository) Create(ctx context.Context, output *outbound.AIModelOutput) error {
	model := aiOutputToModel(output)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	output.ID = model.ID
	output.CreatedAt = model.CreatedAt
	return nil
}

// FindByRequestID loads the audit record for one request
func (r *AIOutputRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*outbound.AIModelOutput, error) {
	var model AIModelOutputModel
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrAIOutputNotFound
		}
		return nil, err
	}
	return aiOutputToDomain(&model), nil
}

// FindRecent lists the newest audit records
func (r *AIOutputRepository) FindRecent(ctx context.Context, limit int) ([]*outbound.AIModelOutput, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []AIModelOutputModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	outputs := make([]*outbound.AIModelOutput, 0, len(models))
	for i := range models {
		outputs = append(outputs, aiOutputToDomain(&models[i]))
	}
	return outputs, nil
}
