package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tailor-kart/internal/config"
	"tailor-kart/internal/handler"
	"tailor-kart/internal/model"
	"tailor-kart/internal/notify"
	"tailor-kart/internal/repository"
	"tailor-kart/internal/router"
	"tailor-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey      = "test-api-key"
	testAdminAPIKey = "test-admin-api-key"
)

type testServer struct {
	*httptest.Server
	db *TestDB
}

func setupAPIServer(t *testing.T) *testServer {
	t.Helper()

	db := SetupTestDB(t)
	logger := zerolog.Nop()

	inventoryRepo := repository.NewInventoryRepository(db.Pool, logger)
	promoRepo := repository.NewPromoRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)
	measurementRepo := repository.NewMeasurementRepository(db.Pool, logger)
	notificationRepo := repository.NewNotificationRepository(db.Pool, logger)

	notifier := notify.NewStoreNotifier(notificationRepo, logger)
	otpSender := notify.NewLogOtpSender(logger)

	pricing := config.PricingConfig{
		BaseCost:       500,
		LabourCost:     350,
		DeliveryCharge: 90,
		HandlingFee:    25,
		ExtraItemCost:  150,
	}

	handlers := router.Handlers{
		Inventory: handler.NewInventoryHandler(service.NewInventoryService(inventoryRepo, logger), logger),
		Promo:     handler.NewPromoHandler(service.NewPromoService(promoRepo, logger), logger),
		Order: handler.NewOrderHandler(service.NewOrderService(
			orderRepo, inventoryRepo, promoRepo, measurementRepo,
			notifier, otpSender, pricing, logger,
		), logger),
		Measurement:  handler.NewMeasurementHandler(service.NewMeasurementService(measurementRepo, logger), logger),
		Notification: handler.NewNotificationHandler(service.NewNotificationService(notificationRepo, logger), logger),
	}

	srv := httptest.NewServer(router.New(handlers, testAPIKey, testAdminAPIKey, logger))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: db}
}

type reqOpts struct {
	userID string
	admin  bool
	apiKey string
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, opts reqOpts) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, buf)
	require.NoError(t, err)

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = testAPIKey
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	if opts.userID != "" {
		req.Header.Set("X-User-ID", opts.userID)
	}
	if opts.admin {
		req.Header.Set("X-User-Role", "admin")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, data
}

func (s *testServer) adminDo(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	return s.do(t, method, path, body, reqOpts{userID: "admin-1", admin: true, apiKey: testAdminAPIKey})
}

func (s *testServer) seedFabric(t *testing.T, material, color string, quantity, price int) model.InventoryItem {
	t.Helper()

	resp, data := s.adminDo(t, http.MethodPost, "/api/admin/fabrics", map[string]interface{}{
		"materialName":  material,
		"color":         color,
		"totalQuantity": quantity,
		"unitPrice":     price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "seed fabric: %s", data)

	var item model.InventoryItem
	require.NoError(t, json.Unmarshal(data, &item))
	return item
}

func (s *testServer) seedPromo(t *testing.T, code string, discount int, usageLimit *int) {
	t.Helper()

	resp, data := s.adminDo(t, http.MethodPost, "/api/admin/promos", map[string]interface{}{
		"code":               code,
		"discountPercentage": discount,
		"validFrom":          time.Now().Add(-time.Hour),
		"validTo":            time.Now().Add(24 * time.Hour),
		"active":             true,
		"usageLimit":         usageLimit,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "seed promo: %s", data)
}

func (s *testServer) deliveryOtp(t *testing.T, orderID uuid.UUID) string {
	t.Helper()

	var otp string
	err := s.db.Pool.QueryRow(context.Background(),
		`SELECT delivery_otp FROM orders WHERE id = $1`, orderID).Scan(&otp)
	require.NoError(t, err)
	return otp
}

func orderPayload(material, color string, metres float64) map[string]interface{} {
	return map[string]interface{}{
		"items": map[string]interface{}{
			"gender":         "male",
			"dressType":      "sherwani",
			"material":       material,
			"color":          color,
			"quantityMetres": metres,
			"measurements":   map[string]string{"chest": "100cm", "waist": "86cm"},
		},
		"deliveryAddress": "221B Thimble Lane",
	}
}

func TestAPI_Health(t *testing.T) {
	s := setupAPIServer(t)

	resp, err := http.Get(s.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_Auth(t *testing.T) {
	s := setupAPIServer(t)

	t.Run("missing API key", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodGet, "/api/fabrics", nil, reqOpts{apiKey: " "})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing user identity on customer routes", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodGet, "/api/orders", nil, reqOpts{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin on admin routes", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodGet, "/api/admin/orders", nil,
			reqOpts{userID: "user-1", apiKey: testAdminAPIKey})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestAPI_FabricCatalogueAndAvailability(t *testing.T) {
	s := setupAPIServer(t)
	s.seedFabric(t, "Cotton", "Red", 10, 200)

	resp, data := s.do(t, http.MethodGet, "/api/fabrics", nil, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.InventoryItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Cotton", items[0].MaterialName)

	resp, data = s.do(t, http.MethodPost, "/api/fabrics/availability", map[string]interface{}{
		"materialName":     "cotton",
		"color":            "RED",
		"requiredQuantity": 4,
	}, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var avail model.AvailabilityResponse
	require.NoError(t, json.Unmarshal(data, &avail))
	assert.True(t, avail.Available)

	// Checking availability never reserves stock.
	resp, data = s.do(t, http.MethodPost, "/api/fabrics/availability", map[string]interface{}{
		"materialName":     "Cotton",
		"color":            "Red",
		"requiredQuantity": 10,
	}, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &avail))
	assert.True(t, avail.Available, "earlier checks must not have consumed stock")
}

func TestAPI_PromoPreview(t *testing.T) {
	s := setupAPIServer(t)
	s.seedPromo(t, "SAVE10", 10, nil)

	resp, data := s.do(t, http.MethodGet, "/api/promos/SAVE10/preview", nil, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var preview model.PromoPreview
	require.NoError(t, json.Unmarshal(data, &preview))
	assert.True(t, preview.Valid)
	assert.Equal(t, 10, preview.DiscountPercentage)

	resp, data = s.do(t, http.MethodGet, "/api/promos/NOPE/preview", nil, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &preview))
	assert.False(t, preview.Valid)
	assert.Equal(t, model.ErrCodePromoNotFound, preview.Reason)
}

func TestAPI_OrderLifecycle(t *testing.T) {
	s := setupAPIServer(t)
	s.seedFabric(t, "Silk", "Ivory", 20, 600)
	s.seedPromo(t, "SAVE10", 10, nil)

	user := reqOpts{userID: "customer-1"}

	// Checkout with a promo code.
	payload := orderPayload("Silk", "Ivory", 3)
	payload["promoCode"] = "SAVE10"
	resp, data := s.do(t, http.MethodPost, "/api/orders", payload, user)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create order: %s", data)

	var order model.Order
	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, model.StatusPending, order.Status)
	// (500 + 3*600 + 350 + 90 + 25) * 0.9 = 2488.50
	assert.Equal(t, "2488.5", order.TotalAmount.String())

	// Walk the fulfilment path.
	for _, status := range []model.OrderStatus{
		model.StatusOrderAccepted, model.StatusShipped, model.StatusOutForDelivery,
	} {
		resp, data = s.adminDo(t, http.MethodPost,
			fmt.Sprintf("/api/admin/orders/%s/status", order.ID),
			map[string]string{"status": string(status)})
		require.Equal(t, http.StatusOK, resp.StatusCode, "advance to %s: %s", status, data)
	}

	// Skipping a stage is rejected.
	resp, _ = s.adminDo(t, http.MethodPost,
		fmt.Sprintf("/api/admin/orders/%s/status", order.ID),
		map[string]string{"status": string(model.StatusOrderAccepted)})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong OTP leaves the order in Out for Delivery.
	resp, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/deliver", order.ID),
		map[string]string{"otp": "000000"}, user)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The right OTP completes delivery.
	otp := s.deliveryOtp(t, order.ID)
	resp, data = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/deliver", order.ID),
		map[string]string{"otp": otp}, user)
	require.Equal(t, http.StatusOK, resp.StatusCode, "deliver: %s", data)

	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, model.StatusDelivered, order.Status)
	assert.True(t, order.OtpVerified)

	// Feedback lands once delivered.
	resp, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/feedback", order.ID),
		map[string]interface{}{"text": "perfect fit", "rating": 5}, user)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Status notifications are emitted asynchronously and accumulate in the
	// inbox shortly after each transition.
	assert.Eventually(t, func() bool {
		resp, data := s.do(t, http.MethodGet, "/api/notifications", nil, user)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var inbox []model.Notification
		if err := json.Unmarshal(data, &inbox); err != nil {
			return false
		}
		return len(inbox) > 0
	}, 3*time.Second, 100*time.Millisecond)
}

func TestAPI_CancelRestoresStock(t *testing.T) {
	s := setupAPIServer(t)
	fabric := s.seedFabric(t, "Wool", "Charcoal", 10, 400)

	user := reqOpts{userID: "customer-2"}

	resp, data := s.do(t, http.MethodPost, "/api/orders", orderPayload("Wool", "Charcoal", 6), user)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create order: %s", data)

	var order model.Order
	require.NoError(t, json.Unmarshal(data, &order))

	// Cancelling without a reason is rejected.
	resp, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/cancel", order.ID),
		map[string]string{"reason": ""}, user)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Another customer cannot cancel it.
	resp, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/cancel", order.ID),
		map[string]string{"reason": "not mine"}, reqOpts{userID: "intruder"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/orders/%s/cancel", order.ID),
		map[string]string{"reason": "found a better fabric"}, user)
	require.Equal(t, http.StatusOK, resp.StatusCode, "cancel: %s", data)

	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, model.StatusCancelled, order.Status)

	// The 6 metres went back on the shelf.
	resp, data = s.do(t, http.MethodGet, "/api/fabrics/"+fabric.ID.String(), nil, reqOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var current model.InventoryItem
	require.NoError(t, json.Unmarshal(data, &current))
	assert.Equal(t, "10", current.TotalQuantity.String())

	// A cancelled order cannot move forward again.
	resp, _ = s.adminDo(t, http.MethodPost,
		fmt.Sprintf("/api/admin/orders/%s/status", order.ID),
		map[string]string{"status": string(model.StatusOrderAccepted)})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_InsufficientStock(t *testing.T) {
	s := setupAPIServer(t)
	s.seedFabric(t, "Velvet", "Emerald", 2, 700)

	resp, data := s.do(t, http.MethodPost, "/api/orders",
		orderPayload("Velvet", "Emerald", 5), reqOpts{userID: "customer-3"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, model.ErrCodeInsufficientStock, errResp.Error)
}

func TestAPI_MeasurementProfiles(t *testing.T) {
	s := setupAPIServer(t)
	s.seedFabric(t, "Cotton", "White", 10, 180)

	user := reqOpts{userID: "customer-4"}

	resp, _ := s.do(t, http.MethodPut, "/api/measurements", map[string]interface{}{
		"gender":    "male",
		"dressType": "sherwani",
		"data":      map[string]string{"chest": "104cm", "shoulder": "47cm"},
	}, user)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Checkout without inline measurements falls back to the saved profile.
	payload := orderPayload("Cotton", "White", 2)
	delete(payload["items"].(map[string]interface{}), "measurements")
	resp, data := s.do(t, http.MethodPost, "/api/orders", payload, user)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create order: %s", data)

	var order model.Order
	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, "104cm", order.Items.Measurements["chest"])

	// Editing the profile afterwards must not touch the snapshot.
	resp, _ = s.do(t, http.MethodPut, "/api/measurements", map[string]interface{}{
		"gender":    "male",
		"dressType": "sherwani",
		"data":      map[string]string{"chest": "108cm"},
	}, user)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = s.do(t, http.MethodGet, "/api/orders/"+order.ID.String(), nil, user)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, "104cm", order.Items.Measurements["chest"],
		"order measurements are a snapshot, not a reference")
}

func TestAPI_OrderVisibility(t *testing.T) {
	s := setupAPIServer(t)
	s.seedFabric(t, "Tweed", "Brown", 10, 350)

	owner := reqOpts{userID: "customer-5"}
	resp, data := s.do(t, http.MethodPost, "/api/orders", orderPayload("Tweed", "Brown", 2), owner)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order model.Order
	require.NoError(t, json.Unmarshal(data, &order))

	// Foreign orders are invisible, not forbidden.
	resp, _ = s.do(t, http.MethodGet, "/api/orders/"+order.ID.String(), nil, reqOpts{userID: "someone-else"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Admin listing sees everything.
	resp, data = s.adminDo(t, http.MethodGet, "/api/admin/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []model.Order
	require.NoError(t, json.Unmarshal(data, &all))
	assert.Len(t, all, 1)
}
