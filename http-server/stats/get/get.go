package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"seftali/internal/upstream"
)

type BadgeSource interface {
	PendingDeliveries(ctx context.Context) ([]upstream.Delivery, error)
	PendingVariance(ctx context.Context) ([]upstream.VarianceEvent, error)
}

type ResponseBadges struct {
	PendingDeliveries int    `json:"pending_deliveries"`
	PendingVariance   int    `json:"pending_variance"`
	Status            string `json:"status"`
}

// GetBadgeCounts feeds the nav badges. These are purely informational, so a
// failed fetch degrades to zero instead of surfacing an error; the count is
// a secondary indicator, not the primary task.
func GetBadgeCounts(log *slog.Logger, src BadgeSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetBadgeCounts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var resp ResponseBadges
		if deliveries, err := src.PendingDeliveries(ctx); err != nil {
			log.Debug("badge deliveries fetch failed", slog.String("op", op), slog.String("error", err.Error()))
		} else {
			resp.PendingDeliveries = len(deliveries)
		}
		if events, err := src.PendingVariance(ctx); err != nil {
			log.Debug("badge variance fetch failed", slog.String("op", op), slog.String("error", err.Error()))
		} else {
			resp.PendingVariance = len(events)
		}

		resp.Status = "ok"
		render.JSON(w, r, resp)
	}
}
