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

type ProductSource interface {
	GetProducts(ctx context.Context) ([]upstream.Product, error)
}

type ResponseProducts struct {
	Products []upstream.Product `json:"products"`
	Status   string             `json:"status"`
	Error    string             `json:"error,omitempty"`
}

func GetProducts(log *slog.Logger, src ProductSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.products.GetProducts"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := src.GetProducts(ctx)
		if err != nil {
			log.Error("products fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseProducts{Error: err.Error()})
			return
		}

		if products == nil {
			products = []upstream.Product{}
		}

		render.JSON(w, r, ResponseProducts{Products: products, Status: "ok"})
	}
}
