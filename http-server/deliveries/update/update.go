package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type DeliveryDecider interface {
	AcceptDelivery(ctx context.Context, id int64) error
	RejectDelivery(ctx context.Context, id int64, reason string) error
}

type Response struct {
	DeliveryID int64  `json:"delivery_id"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// AcceptDelivery confirms receipt; the server folds the delivery into the
// consumption baseline on its side.
func AcceptDelivery(log *slog.Logger, svc DeliveryDecider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deliveries.AcceptDelivery"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Geçersiz teslimat", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.AcceptDelivery(ctx, id); err != nil {
			log.Error("delivery accept failed", slog.Int64("id", id), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("delivery accepted", slog.Int64("id", id))
		render.JSON(w, r, Response{DeliveryID: id, Status: "ok"})
	}
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// RejectDelivery refuses a delivery; a reason is required.
func RejectDelivery(log *slog.Logger, svc DeliveryDecider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deliveries.RejectDelivery"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Geçersiz teslimat", http.StatusBadRequest)
			return
		}

		var req RejectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Reason) == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "Ret nedeni girin"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := svc.RejectDelivery(ctx, id, req.Reason); err != nil {
			log.Error("delivery reject failed", slog.Int64("id", id), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("delivery rejected", slog.Int64("id", id))
		render.JSON(w, r, Response{DeliveryID: id, Status: "ok"})
	}
}
