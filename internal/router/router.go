// Package router wires the HTTP surface: route registration, middleware order
// and the health endpoint.
package router

import (
	"net/http"

	"tailor-kart/internal/handler"
	"tailor-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles the handlers the router mounts.
type Handlers struct {
	Inventory    *handler.InventoryHandler
	Promo        *handler.PromoHandler
	Order        *handler.OrderHandler
	Measurement  *handler.MeasurementHandler
	Notification *handler.NotificationHandler
}

// New builds the router. Middleware order matters: recovery outermost, then
// request logging, CORS, the API key gate, and identity extraction.
func New(h Handlers, apiKey, adminAPIKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Identity)

	r.Get("/health", healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))

			// Catalogue and promo preview are open to any authenticated caller.
			r.Get("/fabrics", h.Inventory.List)
			r.Get("/fabrics/{id}", h.Inventory.GetByID)
			r.Post("/fabrics/availability", h.Inventory.CheckAvailability)
			r.Get("/promos/{code}/preview", h.Promo.Preview)

			// Everything below acts on behalf of a specific customer.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser(logger))

				r.Post("/orders", h.Order.Create)
				r.Get("/orders", h.Order.List)
				r.Get("/orders/{id}", h.Order.GetByID)
				r.Post("/orders/{id}/cancel", h.Order.Cancel)
				r.Post("/orders/{id}/deliver", h.Order.Deliver)
				r.Post("/orders/{id}/feedback", h.Order.Feedback)
				r.Delete("/orders/promo/{code}", h.Promo.Release)

				r.Put("/measurements", h.Measurement.Save)
				r.Get("/measurements", h.Measurement.Get)

				r.Get("/notifications", h.Notification.List)
			})
		})

		// Admin routes are gated by a separate key on top of the admin role.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(adminAPIKey, logger))
			r.Use(middleware.RequireAdmin(logger))

			r.Post("/fabrics", h.Inventory.Create)
			r.Put("/fabrics/{id}", h.Inventory.Update)
			r.Delete("/fabrics/{id}", h.Inventory.Delete)
			r.Put("/fabrics/{id}/quantity", h.Inventory.SetQuantity)

			r.Get("/promos", h.Promo.List)
			r.Post("/promos", h.Promo.Create)
			r.Put("/promos/{id}", h.Promo.Update)
			r.Delete("/promos/{id}", h.Promo.Delete)

			r.Get("/orders", h.Order.ListAll)
			r.Post("/orders/{id}/status", h.Order.UpdateStatus)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
