package service

import (
	"context"
	"testing"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_CheckAvailability(t *testing.T) {
	fabric := &model.InventoryItem{
		ID:            uuid.New(),
		MaterialName:  "Linen",
		Color:         "White",
		TotalQuantity: decimal.NewFromInt(6),
		UnitPrice:     decimal.NewFromInt(320),
	}

	t.Run("enough stock", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		svc := NewInventoryService(repo, zerolog.Nop())

		repo.On("FindByMaterialColor", mock.Anything, "Linen", "White").Return(fabric, nil)

		resp, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
			MaterialName:     "Linen",
			Color:            "White",
			RequiredQuantity: decimal.NewFromInt(4),
		})

		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.True(t, decimal.NewFromInt(6).Equal(resp.AvailableQuantity))
		assert.True(t, decimal.NewFromInt(320).Equal(resp.UnitPrice))
	})

	t.Run("not enough stock", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		svc := NewInventoryService(repo, zerolog.Nop())

		repo.On("FindByMaterialColor", mock.Anything, "Linen", "White").Return(fabric, nil)

		resp, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
			MaterialName:     "Linen",
			Color:            "White",
			RequiredQuantity: decimal.NewFromInt(7),
		})

		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.True(t, decimal.NewFromInt(6).Equal(resp.AvailableQuantity),
			"a failed check still reports what is on hand")
	})

	t.Run("unknown fabric", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		svc := NewInventoryService(repo, zerolog.Nop())

		repo.On("FindByMaterialColor", mock.Anything, "Silk", "Gold").Return(nil, nil)

		_, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
			MaterialName:     "Silk",
			Color:            "Gold",
			RequiredQuantity: decimal.NewFromInt(1),
		})

		require.ErrorIs(t, err, model.ErrFabricNotFound)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		svc := NewInventoryService(repo, zerolog.Nop())

		_, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
			MaterialName:     "Linen",
			Color:            "White",
			RequiredQuantity: decimal.Zero,
		})

		require.ErrorIs(t, err, model.ErrInvalidQuantity)
		repo.AssertNotCalled(t, "FindByMaterialColor", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInventoryService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *model.InventoryItemRequest
	}{
		{"nil request", nil},
		{"blank material", &model.InventoryItemRequest{MaterialName: " ", Color: "Red"}},
		{"blank color", &model.InventoryItemRequest{MaterialName: "Cotton", Color: ""}},
		{"negative quantity", &model.InventoryItemRequest{
			MaterialName: "Cotton", Color: "Red", TotalQuantity: decimal.NewFromInt(-1),
		}},
		{"negative price", &model.InventoryItemRequest{
			MaterialName: "Cotton", Color: "Red", UnitPrice: decimal.NewFromInt(-5),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockInventoryRepository)
			svc := NewInventoryService(repo, zerolog.Nop())

			item, err := svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, item)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestInventoryService_SetQuantity(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := NewInventoryService(repo, zerolog.Nop())
	id := uuid.New()

	err := svc.SetQuantity(context.Background(), id, decimal.NewFromInt(-3))
	require.ErrorIs(t, err, model.ErrInvalidQuantity)

	repo.On("SetQuantity", mock.Anything, id, decimal.NewFromInt(12)).Return(nil)
	err = svc.SetQuantity(context.Background(), id, decimal.NewFromInt(12))
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestInventoryService_GetAll_ClampsPagination(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := NewInventoryService(repo, zerolog.Nop())

	repo.On("GetAll", mock.Anything, 50, 0).Return([]model.InventoryItem{}, nil)

	_, err := svc.GetAll(context.Background(), -5, -10)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
