package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type VarianceResolver interface {
	ApplyVarianceReasonBulk(ctx context.Context, eventIDs []int64, reasonCode, reasonNote string) error
	DismissVarianceBulk(ctx context.Context, eventIDs []int64) error
}

type Response struct {
	Resolved int    `json:"resolved"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type ApplyReasonRequest struct {
	EventIDs   []int64 `json:"event_ids"`
	ReasonCode string  `json:"reason_code"`
	ReasonNote string  `json:"reason_note"`
}

// ApplyReasonBulk assigns one reason to every selected variance event.
func ApplyReasonBulk(log *slog.Logger, svc VarianceResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.variance.ApplyReasonBulk"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req ApplyReasonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if len(req.EventIDs) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "En az bir kayıt seçin"})
			return
		}
		if strings.TrimSpace(req.ReasonCode) == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "Neden kodu girin"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.ApplyVarianceReasonBulk(ctx, req.EventIDs, req.ReasonCode, req.ReasonNote); err != nil {
			log.Error("apply reason failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("variance reasons applied", slog.Int("count", len(req.EventIDs)))
		render.JSON(w, r, Response{Resolved: len(req.EventIDs), Status: "ok"})
	}
}

type DismissRequest struct {
	EventIDs []int64 `json:"event_ids"`
}

// DismissBulk dismisses the selected variance events without a reason.
func DismissBulk(log *slog.Logger, svc VarianceResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.variance.DismissBulk"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req DismissRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if len(req.EventIDs) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "En az bir kayıt seçin"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.DismissVarianceBulk(ctx, req.EventIDs); err != nil {
			log.Error("dismiss failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("variance events dismissed", slog.Int("count", len(req.EventIDs)))
		render.JSON(w, r, Response{Resolved: len(req.EventIDs), Status: "ok"})
	}
}
