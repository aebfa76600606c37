package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/cart"
	"seftali/internal/session"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SubmitCart converts the session cart into an order via a fresh working
// copy. An empty cart is rejected before any network call; on upstream
// failure the cart is left intact so the customer can retry.
func SubmitCart(log *slog.Logger, svc cart.Submitter, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cart.SubmitCart"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sess.Lock()
		defer sess.Unlock()

		if err := sess.Cart.Submit(ctx, svc); err != nil {
			if errors.Is(err, cart.ErrEmpty) {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: "Sepet boş"})
				return
			}
			log.Error("cart submit failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		log.Info("cart submitted")
		render.JSON(w, r, Response{Status: "ok"})
	}
}
