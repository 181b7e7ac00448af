package service

import (
	"context"
	"testing"
	"time"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activePromo(now time.Time) *model.PromoCode {
	limit := 100
	return &model.PromoCode{
		ID:                 uuid.New(),
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ValidFrom:          now.Add(-24 * time.Hour),
		ValidTo:            now.Add(24 * time.Hour),
		Active:             true,
		UsageLimit:         &limit,
		UsedCount:          3,
	}
}

func TestPromoService_Preview(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		promo      func() *model.PromoCode
		wantValid  bool
		wantReason string
	}{
		{
			name:      "applicable code",
			promo:     func() *model.PromoCode { return activePromo(now) },
			wantValid: true,
		},
		{
			name:       "unknown code",
			promo:      func() *model.PromoCode { return nil },
			wantReason: model.ErrCodePromoNotFound,
		},
		{
			name: "deactivated",
			promo: func() *model.PromoCode {
				p := activePromo(now)
				p.Active = false
				return p
			},
			wantReason: model.ErrCodePromoInactive,
		},
		{
			name: "not yet active",
			promo: func() *model.PromoCode {
				p := activePromo(now)
				p.ValidFrom = now.Add(time.Hour)
				return p
			},
			wantReason: model.ErrCodePromoNotYetActive,
		},
		{
			name: "expired",
			promo: func() *model.PromoCode {
				p := activePromo(now)
				p.ValidTo = now.Add(-time.Hour)
				return p
			},
			wantReason: model.ErrCodePromoExpired,
		},
		{
			name: "usage limit reached",
			promo: func() *model.PromoCode {
				p := activePromo(now)
				p.UsedCount = *p.UsageLimit
				return p
			},
			wantReason: model.ErrCodePromoExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPromoRepository)
			svc := NewPromoService(repo, zerolog.Nop())

			promo := tt.promo()
			if promo == nil {
				repo.On("GetByCode", mock.Anything, "SAVE10").Return(nil, nil)
			} else {
				repo.On("GetByCode", mock.Anything, "SAVE10").Return(promo, nil)
			}

			preview, err := svc.Preview(context.Background(), "SAVE10", now)

			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, preview.Valid)
			if tt.wantValid {
				assert.Equal(t, 10, preview.DiscountPercentage)
			} else {
				assert.Equal(t, tt.wantReason, preview.Reason)
			}
			repo.AssertNotCalled(t, "ConsumeUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPromoService_Preview_BlankCode(t *testing.T) {
	svc := NewPromoService(new(MockPromoRepository), zerolog.Nop())

	_, err := svc.Preview(context.Background(), "  ", time.Now())

	require.Error(t, err)
}

func TestPromoService_Release(t *testing.T) {
	repo := new(MockPromoRepository)
	svc := NewPromoService(repo, zerolog.Nop())

	repo.On("ReleaseUsage", mock.Anything, "SAVE10").Return(nil)

	err := svc.Release(context.Background(), " SAVE10 ")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPromoService_Create_Validation(t *testing.T) {
	now := time.Now()
	bad := -1

	tests := []struct {
		name string
		req  *model.PromoCodeRequest
	}{
		{"nil request", nil},
		{"blank code", &model.PromoCodeRequest{Code: " ", DiscountPercentage: 10, ValidFrom: now, ValidTo: now.Add(time.Hour)}},
		{"zero discount", &model.PromoCodeRequest{Code: "X", DiscountPercentage: 0, ValidFrom: now, ValidTo: now.Add(time.Hour)}},
		{"discount over 100", &model.PromoCodeRequest{Code: "X", DiscountPercentage: 101, ValidFrom: now, ValidTo: now.Add(time.Hour)}},
		{"inverted window", &model.PromoCodeRequest{Code: "X", DiscountPercentage: 10, ValidFrom: now, ValidTo: now.Add(-time.Hour)}},
		{"usage limit below one", &model.PromoCodeRequest{Code: "X", DiscountPercentage: 10, ValidFrom: now, ValidTo: now.Add(time.Hour), UsageLimit: &bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPromoRepository)
			svc := NewPromoService(repo, zerolog.Nop())

			promo, err := svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, promo)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPromoService_Create_Success(t *testing.T) {
	repo := new(MockPromoRepository)
	svc := NewPromoService(repo, zerolog.Nop())
	now := time.Now()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.PromoCode")).Return(nil)

	promo, err := svc.Create(context.Background(), &model.PromoCodeRequest{
		Code:               " WELCOME20 ",
		DiscountPercentage: 20,
		ValidFrom:          now,
		ValidTo:            now.Add(30 * 24 * time.Hour),
		Active:             true,
	})

	require.NoError(t, err)
	assert.Equal(t, "WELCOME20", promo.Code)
	assert.Equal(t, 0, promo.UsedCount)
	assert.Nil(t, promo.UsageLimit, "no limit means unlimited uses")
	repo.AssertExpectations(t)
}

func TestPromoService_Update_PreservesUsedCount(t *testing.T) {
	repo := new(MockPromoRepository)
	svc := NewPromoService(repo, zerolog.Nop())
	now := time.Now()

	existing := activePromo(now)
	existing.UsedCount = 42

	repo.On("GetByCode", mock.Anything, "SAVE10").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.PromoCode")).Return(nil)

	promo, err := svc.Update(context.Background(), existing.ID, &model.PromoCodeRequest{
		Code:               "SAVE10",
		DiscountPercentage: 15,
		ValidFrom:          now,
		ValidTo:            now.Add(time.Hour),
		Active:             true,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, promo.UsedCount)
	assert.Equal(t, 15, promo.DiscountPercentage)
}
