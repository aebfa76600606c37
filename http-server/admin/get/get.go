package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/upstream"
)

type AdminSource interface {
	HealthSummary(ctx context.Context) (*upstream.HealthSummary, error)
	Variance(ctx context.Context) ([]upstream.VarianceEvent, error)
	Deliveries(ctx context.Context) ([]upstream.Delivery, error)
	WarehouseOrders(ctx context.Context) ([]upstream.WarehouseOrder, error)
}

type ResponseHealth struct {
	Summary *upstream.HealthSummary `json:"summary,omitempty"`
	Status  string                  `json:"status"`
	Error   string                  `json:"error,omitempty"`
}

func GetHealthSummary(log *slog.Logger, src AdminSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetHealthSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := src.HealthSummary(ctx)
		if err != nil {
			log.Error("health summary fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseHealth{Error: err.Error()})
			return
		}

		render.JSON(w, r, ResponseHealth{Summary: summary, Status: "ok"})
	}
}

type ResponseVariance struct {
	Events []upstream.VarianceEvent `json:"events"`
	Status string                   `json:"status"`
	Error  string                   `json:"error,omitempty"`
}

// GetVariance lists all variance events across customers, not just pending
// ones.
func GetVariance(log *slog.Logger, src AdminSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetVariance"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		events, err := src.Variance(ctx)
		if err != nil {
			log.Error("variance fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseVariance{Error: err.Error()})
			return
		}
		if events == nil {
			events = []upstream.VarianceEvent{}
		}

		render.JSON(w, r, ResponseVariance{Events: events, Status: "ok"})
	}
}

type ResponseDeliveries struct {
	Deliveries []upstream.Delivery `json:"deliveries"`
	Status     string              `json:"status"`
	Error      string              `json:"error,omitempty"`
}

func GetDeliveries(log *slog.Logger, src AdminSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetDeliveries"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deliveries, err := src.Deliveries(ctx)
		if err != nil {
			log.Error("deliveries fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseDeliveries{Error: err.Error()})
			return
		}
		if deliveries == nil {
			deliveries = []upstream.Delivery{}
		}

		render.JSON(w, r, ResponseDeliveries{Deliveries: deliveries, Status: "ok"})
	}
}

type ResponseWarehouseOrders struct {
	Orders []upstream.WarehouseOrder `json:"orders"`
	Status string                    `json:"status"`
	Error  string                    `json:"error,omitempty"`
}

func GetWarehouseOrders(log *slog.Logger, src AdminSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetWarehouseOrders"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := src.WarehouseOrders(ctx)
		if err != nil {
			log.Error("warehouse orders fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseWarehouseOrders{Error: err.Error()})
			return
		}
		if orders == nil {
			orders = []upstream.WarehouseOrder{}
		}

		render.JSON(w, r, ResponseWarehouseOrders{Orders: orders, Status: "ok"})
	}
}
