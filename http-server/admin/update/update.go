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

type WarehouseProcessor interface {
	ProcessWarehouseOrder(ctx context.Context, id int64) error
}

type Response struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// ProcessWarehouseOrder marks an aggregated warehouse order as processed.
func ProcessWarehouseOrder(log *slog.Logger, svc WarehouseProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.ProcessWarehouseOrder"

		log := log.With(
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

		if err := svc.ProcessWarehouseOrder(ctx, id); err != nil {
			log.Error("warehouse order process failed", slog.Int64("id", id), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("warehouse order processed", slog.Int64("id", id))
		render.JSON(w, r, Response{OrderID: id, Status: "ok"})
	}
}
