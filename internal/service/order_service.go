package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailor-kart/internal/config"
	"tailor-kart/internal/model"
	"tailor-kart/internal/notify"
	"tailor-kart/internal/otp"
	"tailor-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// statusNotificationTitle is the title of every order status notification.
const statusNotificationTitle = "Order Status Update"

// expectedDeliveryLeadTime is the promised turnaround for a tailored garment.
const expectedDeliveryLeadTime = 14 * 24 * time.Hour

// orderService implements OrderService.
type orderService struct {
	orderRepo       repository.OrderRepository
	inventoryRepo   repository.InventoryRepository
	promoRepo       repository.PromoRepository
	measurementRepo repository.MeasurementRepository
	notifier        notify.Notifier
	otpSender       notify.OtpSender
	pricing         config.PricingConfig
	logger          zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	promoRepo repository.PromoRepository,
	measurementRepo repository.MeasurementRepository,
	notifier notify.Notifier,
	otpSender notify.OtpSender,
	pricing config.PricingConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		inventoryRepo:   inventoryRepo,
		promoRepo:       promoRepo,
		measurementRepo: measurementRepo,
		notifier:        notifier,
		otpSender:       otpSender,
		pricing:         pricing,
		logger:          logger.With().Str("service", "order").Logger(),
	}
}

// Create validates the checkout payload, then runs stock deduction, promo
// application and order insertion as one transaction. A failed deduction or
// promo claim leaves no order behind.
func (s *orderService) Create(ctx context.Context, userID string, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(userID, req); err != nil {
		return nil, err
	}

	fabric, err := s.inventoryRepo.FindByMaterialColor(ctx, req.Items.Material, req.Items.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if fabric == nil {
		return nil, model.ErrFabricNotFound
	}

	measurements := req.Items.Measurements
	if len(measurements) == 0 {
		// Fall back to the saved profile and snapshot it into the order.
		profile, err := s.measurementRepo.Get(ctx, userID, req.Items.Gender, req.Items.DressType)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if profile == nil {
			return nil, model.NewDomainError(model.ErrCodeMissingField,
				"measurements are required (none supplied and no saved profile found)")
		}
		measurements = profile.Data
	}

	subtotal := s.computeSubtotal(fabric.UnitPrice, req.Items.QuantityMetres, len(req.Items.Extras))

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if _, err = s.inventoryRepo.Deduct(ctx, tx, fabric.ID, req.Items.QuantityMetres); err != nil {
		s.logger.Warn().
			Err(err).
			Str("fabric_id", fabric.ID.String()).
			Str("quantity", req.Items.QuantityMetres.String()).
			Msg("stock deduction failed")
		return nil, err
	}

	total := subtotal
	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) != "" {
		code := strings.TrimSpace(*req.PromoCode)
		promo, applyErr := s.promoRepo.ConsumeUsage(ctx, tx, code, time.Now())
		if applyErr != nil {
			err = applyErr
			s.logger.Warn().Err(err).Str("code", code).Msg("promo application failed")
			return nil, err
		}
		total = applyDiscount(subtotal, promo.DiscountPercentage)
		req.PromoCode = &code
	}

	now := time.Now()
	expected := now.Add(expectedDeliveryLeadTime)
	order := &model.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: model.OrderItems{
			Gender:         req.Items.Gender,
			DressType:      req.Items.DressType,
			Material:       fabric.MaterialName,
			Color:          fabric.Color,
			QuantityMetres: req.Items.QuantityMetres,
			Measurements:   measurements,
			Extras:         req.Items.Extras,
		},
		InventoryItemID:      fabric.ID,
		PromoCode:            req.PromoCode,
		TotalAmount:          total,
		Status:               model.StatusPending,
		DeliveryAddress:      strings.TrimSpace(req.DeliveryAddress),
		ExpectedDeliveryDate: &expected,
		PendingAt:            &now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Str("total", total.String()).
		Msg("order created successfully")

	s.notifyStatusChange(order)

	return order, nil
}

// GetByID retrieves an order. Non-admin callers only see their own orders.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || (!isAdmin && order.UserID != userID) {
		return nil, nil
	}
	return order, nil
}

// ListByUser retrieves the caller's orders.
func (s *orderService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error) {
	limit, offset = clampPage(limit, offset)
	return s.orderRepo.ListByUser(ctx, userID, limit, offset)
}

// List retrieves all orders (admin).
func (s *orderService) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	limit, offset = clampPage(limit, offset)
	return s.orderRepo.List(ctx, limit, offset)
}

// Advance moves an order forward along the fulfilment path. Entering Out for
// Delivery generates and dispatches the delivery OTP.
func (s *orderService) Advance(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error) {
	switch target {
	case model.StatusOrderAccepted, model.StatusShipped, model.StatusOutForDelivery:
	default:
		return nil, model.ErrIllegalTransition
	}

	var generatedOtp string

	order, err := s.transition(ctx, id, func(order *model.Order) error {
		if !order.Status.CanTransition(target) {
			return model.ErrIllegalTransition
		}

		now := time.Now()
		order.Status = target
		switch target {
		case model.StatusOrderAccepted:
			order.OrderAcceptedAt = &now
		case model.StatusShipped:
			order.ShippedAt = &now
		case model.StatusOutForDelivery:
			code, genErr := otp.Generate()
			if genErr != nil {
				return genErr
			}
			generatedOtp = code
			order.DeliveryOtp = &code
			order.OtpVerified = false
			order.OutForDeliveryAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if generatedOtp != "" {
		s.dispatchOtp(order.UserID, generatedOtp)
	}
	s.notifyStatusChange(order)

	return order, nil
}

// Deliver confirms delivery, gated by the stored OTP. A wrong code leaves the
// order untouched in Out for Delivery.
func (s *orderService) Deliver(ctx context.Context, id uuid.UUID, suppliedOtp string) (*model.Order, error) {
	order, err := s.transition(ctx, id, func(order *model.Order) error {
		if order.Status != model.StatusOutForDelivery {
			return model.ErrIllegalTransition
		}
		if order.DeliveryOtp == nil || *order.DeliveryOtp == "" {
			return model.ErrOtpNotGenerated
		}
		if strings.TrimSpace(suppliedOtp) == "" {
			return model.ErrOtpRequired
		}
		if !otp.Matches(suppliedOtp, *order.DeliveryOtp) {
			return model.ErrOtpMismatch
		}

		now := time.Now()
		order.Status = model.StatusDelivered
		order.OtpVerified = true
		order.DeliveredAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(order)

	return order, nil
}

// Cancel cancels a Pending order and restores the deducted stock inside the
// same transaction.
func (s *orderService) Cancel(ctx context.Context, id uuid.UUID, userID string, isAdmin bool, reason string) (*model.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, model.ErrCancelReasonNeeded
	}

	order, err := s.transitionTx(ctx, id, func(tx pgx.Tx, order *model.Order) error {
		if !isAdmin && order.UserID != userID {
			return model.ErrOrderNotFound
		}
		if order.Status != model.StatusPending {
			return model.ErrOrderNotPending
		}

		if restoreErr := s.inventoryRepo.Restore(ctx, tx, order.InventoryItemID, order.Items.QuantityMetres); restoreErr != nil {
			return restoreErr
		}

		now := time.Now()
		order.Status = model.StatusCancelled
		order.CancelReason = &reason
		order.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("reason", reason).
		Msg("order cancelled, stock restored")

	s.notifyStatusChange(order)

	return order, nil
}

// Feedback records text and a 1-5 rating on a Delivered order.
func (s *orderService) Feedback(ctx context.Context, id uuid.UUID, userID string, req *model.FeedbackRequest) (*model.Order, error) {
	if req == nil || req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	return s.transition(ctx, id, func(order *model.Order) error {
		if order.UserID != userID {
			return model.ErrOrderNotFound
		}
		if order.Status != model.StatusDelivered {
			return model.ErrOrderNotDelivered
		}

		text := strings.TrimSpace(req.Text)
		order.FeedbackText = &text
		rating := req.Rating
		order.FeedbackRating = &rating
		return nil
	})
}

// transition runs mutate against a row-locked order inside a transaction. Any
// error from mutate rolls the whole transaction back and leaves the order
// unchanged.
func (s *orderService) transition(ctx context.Context, id uuid.UUID, mutate func(*model.Order) error) (*model.Order, error) {
	return s.transitionTx(ctx, id, func(_ pgx.Tx, order *model.Order) error {
		return mutate(order)
	})
}

func (s *orderService) transitionTx(ctx context.Context, id uuid.UUID, mutate func(pgx.Tx, *model.Order) error) (*model.Order, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if err = mutate(tx, order); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(order.Status)).
			Msg("order transition rejected")
		return nil, err
	}

	order.UpdatedAt = time.Now()

	if err = s.orderRepo.Update(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order updated")

	return order, nil
}

// notifyStatusChange emits the status notification without blocking the
// request. Failures are logged and never surfaced.
func (s *orderService) notifyStatusChange(order *model.Order) {
	userID := order.UserID
	orderID := order.ID
	status := order.Status

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		message := fmt.Sprintf("Your order %s is now %s", orderID, status)
		if err := s.notifier.Emit(ctx, userID, statusNotificationTitle, message, orderID, time.Now()); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", orderID.String()).
				Msg("failed to emit status notification")
		}
	}()
}

// dispatchOtp sends the delivery OTP without blocking the request.
func (s *orderService) dispatchOtp(userID, code string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.otpSender.SendOtp(ctx, userID, code); err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("failed to send delivery OTP")
		}
	}()
}

// computeSubtotal sums the additive charge components before any discount.
func (s *orderService) computeSubtotal(unitPrice, quantityMetres decimal.Decimal, extrasCount int) decimal.Decimal {
	subtotal := decimal.NewFromFloat(s.pricing.BaseCost).
		Add(unitPrice.Mul(quantityMetres)).
		Add(decimal.NewFromFloat(s.pricing.LabourCost)).
		Add(decimal.NewFromFloat(s.pricing.DeliveryCharge)).
		Add(decimal.NewFromFloat(s.pricing.HandlingFee)).
		Add(decimal.NewFromFloat(s.pricing.ExtraItemCost).Mul(decimal.NewFromInt(int64(extrasCount))))
	return subtotal.Round(2)
}

// applyDiscount applies the promo percentage multiplicatively, once, after all
// additive charges.
func applyDiscount(subtotal decimal.Decimal, discountPercentage int) decimal.Decimal {
	factor := decimal.NewFromInt(int64(100 - discountPercentage)).Div(decimal.NewFromInt(100))
	return subtotal.Mul(factor).Round(2)
}

func (s *orderService) validateOrderRequest(userID string, req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "order request is required")
	}
	if strings.TrimSpace(userID) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "user identity is required")
	}
	if strings.TrimSpace(req.Items.Gender) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "items.gender is required")
	}
	if strings.TrimSpace(req.Items.DressType) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "items.dressType is required")
	}
	if strings.TrimSpace(req.Items.Material) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "items.material is required")
	}
	if strings.TrimSpace(req.Items.Color) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "items.color is required")
	}
	if req.Items.QuantityMetres.LessThanOrEqual(decimal.Zero) {
		s.logger.Warn().
			Str("quantity", req.Items.QuantityMetres.String()).
			Msg("invalid order quantity")
		return model.ErrInvalidQuantity
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "deliveryAddress is required")
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
