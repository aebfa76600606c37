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

type VarianceSource interface {
	PendingVariance(ctx context.Context) ([]upstream.VarianceEvent, error)
}

type ResponseVariance struct {
	Events []upstream.VarianceEvent `json:"events"`
	Status string                   `json:"status"`
	Error  string                   `json:"error,omitempty"`
}

// GetPendingVariance lists consumption deviations waiting for a reason or a
// dismissal. Events are opaque to this layer; only selection happens here.
func GetPendingVariance(log *slog.Logger, src VarianceSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.variance.GetPendingVariance"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		events, err := src.PendingVariance(ctx)
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
