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
	"github.com/shopspring/decimal"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	repo   repository.InventoryRepository
	logger zerolog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(repo repository.InventoryRepository, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		repo:   repo,
		logger: logger.With().Str("service", "inventory").Logger(),
	}
}

// GetAll retrieves the fabric catalogue with pagination.
func (s *inventoryService) GetAll(ctx context.Context, limit, offset int) ([]model.InventoryItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetAll(ctx, limit, offset)
}

// GetByID retrieves a single fabric by ID.
func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

// CheckAvailability reports whether enough fabric is in stock. No side effects.
func (s *inventoryService) CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityResponse, error) {
	if strings.TrimSpace(req.MaterialName) == "" || strings.TrimSpace(req.Color) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "materialName and color are required")
	}
	if req.RequiredQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.repo.FindByMaterialColor(ctx, req.MaterialName, req.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if item == nil {
		return nil, model.ErrFabricNotFound
	}

	return &model.AvailabilityResponse{
		Available:         item.TotalQuantity.GreaterThanOrEqual(req.RequiredQuantity),
		AvailableQuantity: item.TotalQuantity,
		UnitPrice:         item.UnitPrice,
	}, nil
}

// Create adds a new fabric (admin).
func (s *inventoryService) Create(ctx context.Context, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateInventoryRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.InventoryItem{
		ID:            uuid.New(),
		MaterialName:  strings.TrimSpace(req.MaterialName),
		MaterialType:  req.MaterialType,
		Color:         strings.TrimSpace(req.Color),
		ColorCode:     req.ColorCode,
		Pattern:       req.Pattern,
		TotalQuantity: req.TotalQuantity,
		UnitPrice:     req.UnitPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create fabric: %w", err)
	}

	s.logger.Info().
		Str("fabric_id", item.ID.String()).
		Str("material", item.MaterialName).
		Str("color", item.Color).
		Msg("fabric created")

	return item, nil
}

// Update overwrites a fabric's attributes (admin).
func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := validateInventoryRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update fabric: %w", err)
	}
	if existing == nil {
		return nil, model.ErrFabricNotFound
	}

	existing.MaterialName = strings.TrimSpace(req.MaterialName)
	existing.MaterialType = req.MaterialType
	existing.Color = strings.TrimSpace(req.Color)
	existing.ColorCode = req.ColorCode
	existing.Pattern = req.Pattern
	existing.TotalQuantity = req.TotalQuantity
	existing.UnitPrice = req.UnitPrice
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a fabric (admin).
func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SetQuantity overwrites the stock level (admin correction).
func (s *inventoryService) SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return model.ErrInvalidQuantity
	}
	return s.repo.SetQuantity(ctx, id, quantity)
}

func validateInventoryRequest(req *model.InventoryItemRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if strings.TrimSpace(req.MaterialName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "materialName is required")
	}
	if strings.TrimSpace(req.Color) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "color is required")
	}
	if req.TotalQuantity.IsNegative() {
		return model.ErrInvalidQuantity
	}
	if req.UnitPrice.IsNegative() {
		return model.NewDomainError(model.ErrCodeMissingField, "unitPrice must not be negative")
	}
	return nil
}
