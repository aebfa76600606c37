package save

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/upstream"
)

type StockDeclarer interface {
	DeclareStock(ctx context.Context, items []upstream.StockDeclarationItem) (*upstream.StockDeclarationResult, error)
}

type DeclareRequest struct {
	Items []upstream.StockDeclarationItem `json:"items"`
}

type Response struct {
	SpikesDetected int    `json:"spikes_detected"`
	Message        string `json:"message,omitempty"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

// DeclareStock submits the customer's self-declared stock counts. The server
// runs spike detection on its side; the success message carries the detected
// count so the screen can point the customer at the variance review.
func DeclareStock(log *slog.Logger, svc StockDeclarer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stock.DeclareStock"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req DeclareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}
		if len(req.Items) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "En az bir ürün girin"})
			return
		}
		for _, item := range req.Items {
			if item.Qty < 0 {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: "Miktar negatif olamaz"})
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := svc.DeclareStock(ctx, req.Items)
		if err != nil {
			log.Error("stock declaration failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		message := "Stok bildirimi kaydedildi"
		if result.SpikesDetected > 0 {
			message = fmt.Sprintf("Stok bildirimi kaydedildi, %d sapma tespit edildi", result.SpikesDetected)
		}

		log.Info("stock declared", slog.Int("spikes", result.SpikesDetected))

		render.JSON(w, r, Response{
			SpikesDetected: result.SpikesDetected,
			Message:        message,
			Status:         "ok",
		})
	}
}
