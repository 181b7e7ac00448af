package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tailor-kart/internal/model"
	"tailor-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// promoService implements PromoService.
type promoService struct {
	repo   repository.PromoRepository
	logger zerolog.Logger
}

// NewPromoService creates a new promo code service.
func NewPromoService(repo repository.PromoRepository, logger zerolog.Logger) PromoService {
	return &promoService{
		repo:   repo,
		logger: logger.With().Str("service", "promo").Logger(),
	}
}

// Preview reports whether a code could be applied at the given instant.
// Read-only: usage slots are only consumed by the checkout transaction.
func (s *promoService) Preview(ctx context.Context, code string, now time.Time) (*model.PromoPreview, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "promo code is required")
	}

	promo, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to preview promo code: %w", err)
	}

	if reason := repository.ClassifyPromo(promo, now); reason != nil {
		var domainErr *model.DomainError
		if !errors.As(reason, &domainErr) {
			return nil, reason
		}
		s.logger.Debug().
			Str("code", code).
			Str("reason", domainErr.Code).
			Msg("promo code not applicable")
		return &model.PromoPreview{Valid: false, Reason: domainErr.Code}, nil
	}

	return &model.PromoPreview{
		Valid:              true,
		DiscountPercentage: promo.DiscountPercentage,
	}, nil
}

// Release returns a previously applied code's usage slot.
func (s *promoService) Release(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "promo code is required")
	}

	if err := s.repo.ReleaseUsage(ctx, code); err != nil {
		return err
	}

	s.logger.Info().Str("code", code).Msg("promo code released")

	return nil
}

// GetAll retrieves all promo codes (admin).
func (s *promoService) GetAll(ctx context.Context) ([]model.PromoCode, error) {
	return s.repo.GetAll(ctx)
}

// Create adds a new promo code (admin).
func (s *promoService) Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	if err := validatePromoRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	promo := &model.PromoCode{
		ID:                 uuid.New(),
		Code:               strings.TrimSpace(req.Code),
		DiscountPercentage: req.DiscountPercentage,
		ValidFrom:          req.ValidFrom,
		ValidTo:            req.ValidTo,
		Active:             req.Active,
		UsageLimit:         req.UsageLimit,
		UsedCount:          0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	s.logger.Info().
		Str("code", promo.Code).
		Int("discount", promo.DiscountPercentage).
		Msg("promo code created")

	return promo, nil
}

// Update overwrites a promo code (admin). The used count is untouched.
func (s *promoService) Update(ctx context.Context, id uuid.UUID, req *model.PromoCodeRequest) (*model.PromoCode, error) {
	if err := validatePromoRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}

	promo := &model.PromoCode{
		ID:                 id,
		Code:               strings.TrimSpace(req.Code),
		DiscountPercentage: req.DiscountPercentage,
		ValidFrom:          req.ValidFrom,
		ValidTo:            req.ValidTo,
		Active:             req.Active,
		UsageLimit:         req.UsageLimit,
		UpdatedAt:          time.Now(),
	}
	if existing != nil && existing.ID == id {
		promo.UsedCount = existing.UsedCount
		promo.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, err
	}

	return promo, nil
}

// Delete removes a promo code (admin).
func (s *promoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validatePromoRequest(req *model.PromoCodeRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if strings.TrimSpace(req.Code) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "code is required")
	}
	if req.DiscountPercentage < 1 || req.DiscountPercentage > 100 {
		return model.NewDomainError(model.ErrCodeMissingField, "discountPercentage must be between 1 and 100")
	}
	if req.ValidTo.Before(req.ValidFrom) {
		return model.NewDomainError(model.ErrCodeMissingField, "validTo must not be before validFrom")
	}
	if req.UsageLimit != nil && *req.UsageLimit < 1 {
		return model.NewDomainError(model.ErrCodeMissingField, "usageLimit must be at least 1 when set")
	}
	return nil
}
