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

type DeliverySource interface {
	PendingDeliveries(ctx context.Context) ([]upstream.Delivery, error)
	DeliveryHistory(ctx context.Context) ([]upstream.Delivery, error)
}

type ResponseDeliveries struct {
	Deliveries []upstream.Delivery `json:"deliveries"`
	Status     string              `json:"status"`
	Error      string              `json:"error,omitempty"`
}

// GetPendingDeliveries lists deliveries awaiting acceptance or rejection.
func GetPendingDeliveries(log *slog.Logger, src DeliverySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deliveries.GetPendingDeliveries"
		serve(w, r, log, op, src.PendingDeliveries)
	}
}

func GetDeliveryHistory(log *slog.Logger, src DeliverySource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deliveries.GetDeliveryHistory"
		serve(w, r, log, op, src.DeliveryHistory)
	}
}

func serve(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, fetch func(context.Context) ([]upstream.Delivery, error)) {
	log = log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deliveries, err := fetch(ctx)
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
