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

type SalesSource interface {
	Customers(ctx context.Context) ([]upstream.Customer, error)
	Deliveries(ctx context.Context) ([]upstream.Delivery, error)
	Orders(ctx context.Context) ([]upstream.Order, error)
	WarehouseDraft(ctx context.Context) (*upstream.WarehouseDraft, error)
}

type ResponseCustomers struct {
	Customers []upstream.Customer `json:"customers"`
	Status    string              `json:"status"`
	Error     string              `json:"error,omitempty"`
}

func GetCustomers(log *slog.Logger, src SalesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.GetCustomers"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		customers, err := src.Customers(ctx)
		if err != nil {
			log.Error("customers fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseCustomers{Error: err.Error()})
			return
		}
		if customers == nil {
			customers = []upstream.Customer{}
		}

		render.JSON(w, r, ResponseCustomers{Customers: customers, Status: "ok"})
	}
}

type ResponseDeliveries struct {
	Deliveries []upstream.Delivery `json:"deliveries"`
	Status     string              `json:"status"`
	Error      string              `json:"error,omitempty"`
}

func GetDeliveries(log *slog.Logger, src SalesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.GetDeliveries"

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

type ResponseOrders struct {
	Orders []upstream.Order `json:"orders"`
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
}

func GetOrders(log *slog.Logger, src SalesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.GetOrders"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orders, err := src.Orders(ctx)
		if err != nil {
			log.Error("orders fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseOrders{Error: err.Error()})
			return
		}
		if orders == nil {
			orders = []upstream.Order{}
		}

		render.JSON(w, r, ResponseOrders{Orders: orders, Status: "ok"})
	}
}

type ResponseWarehouseDraft struct {
	Draft  *upstream.WarehouseDraft `json:"draft,omitempty"`
	Status string                   `json:"status"`
	Error  string                   `json:"error,omitempty"`
}

func GetWarehouseDraft(log *slog.Logger, src SalesSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.GetWarehouseDraft"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		draft, err := src.WarehouseDraft(ctx)
		if err != nil {
			log.Error("warehouse draft fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseWarehouseDraft{Error: err.Error()})
			return
		}

		render.JSON(w, r, ResponseWarehouseDraft{Draft: draft, Status: "ok"})
	}
}
