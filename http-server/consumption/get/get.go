package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/consumption"
	"seftali/internal/upstream"
)

type ConsumptionSource interface {
	DailyConsumption(ctx context.Context, dateFrom string) ([]upstream.DailyConsumption, error)
	ConsumptionSummary(ctx context.Context) ([]upstream.ConsumptionSummaryItem, error)
}

type ResponseDaily struct {
	Daily   []upstream.DailyConsumption `json:"daily"`
	Buckets []consumption.Bucket        `json:"buckets,omitempty"`
	Status  string                      `json:"status"`
	Error   string                      `json:"error,omitempty"`
}

// GetDailyConsumption returns the daily series, optionally bucketed for the
// chart: group=weekly or group=monthly aggregates client-side, the way the
// SPA's chart wants it.
func GetDailyConsumption(log *slog.Logger, src ConsumptionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.consumption.GetDailyConsumption"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		dateFrom := r.URL.Query().Get("date_from")
		group := r.URL.Query().Get("group")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		daily, err := src.DailyConsumption(ctx, dateFrom)
		if err != nil {
			log.Error("daily consumption fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseDaily{Error: err.Error()})
			return
		}
		if daily == nil {
			daily = []upstream.DailyConsumption{}
		}

		resp := ResponseDaily{Daily: daily, Status: "ok"}
		switch group {
		case "weekly":
			resp.Buckets = consumption.Weekly(daily)
		case "monthly":
			resp.Buckets = consumption.Monthly(daily)
		}

		render.JSON(w, r, resp)
	}
}

type ResponseSummary struct {
	Summary []upstream.ConsumptionSummaryItem `json:"summary"`
	Status  string                            `json:"status"`
	Error   string                            `json:"error,omitempty"`
}

func GetConsumptionSummary(log *slog.Logger, src ConsumptionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.consumption.GetConsumptionSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := src.ConsumptionSummary(ctx)
		if err != nil {
			log.Error("summary fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseSummary{Error: err.Error()})
			return
		}
		if summary == nil {
			summary = []upstream.ConsumptionSummaryItem{}
		}

		render.JSON(w, r, ResponseSummary{Summary: summary, Status: "ok"})
	}
}
