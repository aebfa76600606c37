package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type OrderReviewer interface {
	ApproveOrder(ctx context.Context, id int64) error
	RequestOrderEdit(ctx context.Context, id int64) error
}

type Response struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// ApproveOrder marks a customer order as approved for fulfilment.
func ApproveOrder(log *slog.Logger, svc OrderReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.ApproveOrder"
		decide(w, r, log, op, svc.ApproveOrder, "order approved")
	}
}

// RequestOrderEdit sends an order back to the customer for changes.
func RequestOrderEdit(log *slog.Logger, svc OrderReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sales.RequestOrderEdit"
		decide(w, r, log, op, svc.RequestOrderEdit, "order edit requested")
	}
}

func decide(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, action func(context.Context, int64) error, msg string) {
	log = log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Geçersiz sipariş", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := action(ctx, id); err != nil {
		log.Error("order decision failed", slog.Int64("id", id), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, Response{Error: err.Error()})
		return
	}

	log.Info(msg, slog.Int64("id", id))
	render.JSON(w, r, Response{OrderID: id, Status: "ok"})
}
