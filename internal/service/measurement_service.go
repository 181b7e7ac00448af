package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailor-kart/internal/model"
	"tailor-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// measurementService implements MeasurementService.
type measurementService struct {
	repo   repository.MeasurementRepository
	logger zerolog.Logger
}

// NewMeasurementService creates a new measurement profile service.
func NewMeasurementService(repo repository.MeasurementRepository, logger zerolog.Logger) MeasurementService {
	return &measurementService{
		repo:   repo,
		logger: logger.With().Str("service", "measurement").Logger(),
	}
}

// Save creates or replaces the caller's profile for (gender, dressType).
// Orders placed earlier keep their snapshot; this only affects future orders.
func (s *measurementService) Save(ctx context.Context, userID string, req *model.MeasurementRequest) (*model.Measurement, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if strings.TrimSpace(req.Gender) == "" || strings.TrimSpace(req.DressType) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "gender and dressType are required")
	}
	if len(req.Data) == 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "measurement data is required")
	}

	now := time.Now()
	m := &model.Measurement{
		ID:        uuid.New(),
		UserID:    userID,
		Gender:    strings.TrimSpace(req.Gender),
		DressType: strings.TrimSpace(req.DressType),
		Data:      req.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save measurement profile: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("dress_type", m.DressType).
		Msg("measurement profile saved")

	return m, nil
}

// Get retrieves the caller's profile for (gender, dressType).
func (s *measurementService) Get(ctx context.Context, userID, gender, dressType string) (*model.Measurement, error) {
	return s.repo.Get(ctx, userID, gender, dressType)
}

// ListByUser retrieves all of the caller's profiles.
func (s *measurementService) ListByUser(ctx context.Context, userID string) ([]model.Measurement, error) {
	return s.repo.ListByUser(ctx, userID)
}
