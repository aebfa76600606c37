package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/upstream"
)

type SalesWriter interface {
	CreateDelivery(ctx context.Context, customerID int64, items []upstream.DeliveryItem) (*upstream.Delivery, error)
	SubmitWarehouseDraft(ctx context.Context) error
}

type CreateDeliveryRequest struct {
	CustomerID int64                   `json:"customer_id"`
	Items      []upstream.DeliveryItem `json:"items"`
}

type ResponseDelivery struct {
	Delivery *upstream.Delivery `json:"delivery,omitempty"`
	Status   string             `json:"status"`
	Error    string             `json:"error,omitempty"`
}

// CreateDelivery records a delivery made to a customer.
func CreateDelivery(log *slog.Logger, svc SalesWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.CreateDelivery"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req CreateDeliveryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if req.CustomerID == 0 || len(req.Items) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, ResponseDelivery{Error: "Müşteri ve en az bir ürün girin"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		delivery, err := svc.CreateDelivery(ctx, req.CustomerID, req.Items)
		if err != nil {
			log.Error("create delivery failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseDelivery{Error: err.Error()})
			return
		}

		log.Info("delivery created", slog.Int64("customer_id", req.CustomerID))
		render.JSON(w, r, ResponseDelivery{Delivery: delivery, Status: "ok"})
	}
}

type ResponseSubmit struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SubmitWarehouseDraft sends the aggregated warehouse draft off for
// processing.
func SubmitWarehouseDraft(log *slog.Logger, svc SalesWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.SubmitWarehouseDraft"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.SubmitWarehouseDraft(ctx); err != nil {
			log.Error("warehouse draft submit failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseSubmit{Error: err.Error()})
			return
		}

		log.Info("warehouse draft submitted")
		render.JSON(w, r, ResponseSubmit{Status: "ok"})
	}
}
