package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"seftali/internal/cart"
	"seftali/internal/session"
	"seftali/internal/upstream"
)

type DraftSource interface {
	GetDraft(ctx context.Context) ([]upstream.DraftSuggestion, error)
}

type Response struct {
	Count  int    `json:"count"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SeedCart initializes the session cart from the server draft: one entry per
// product with a positive suggested quantity.
func SeedCart(log *slog.Logger, src DraftSource, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cart.SeedCart"

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

		suggestions, err := src.GetDraft(ctx)
		if err != nil {
			log.Error("draft fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		sess.Lock()
		defer sess.Unlock()

		sess.Cart.Seed(suggestions)

		render.JSON(w, r, Response{Count: sess.Cart.Count(), Status: "ok"})
	}
}

type AddItemRequest struct {
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Qty         *int             `json:"qty"`
	Price       *decimal.Decimal `json:"price"`
}

// AddCartItem puts a product into the cart explicitly; the quantity comes
// from the request body, bound to the cart model rather than read back out of
// the rendered input at submit time.
func AddCartItem(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cart.AddCartItem"

		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		product := upstream.Product{ID: req.ProductID, Name: req.ProductName}
		if err := sess.Cart.Add(product, req.Qty, req.Price); err != nil {
			if errors.Is(err, cart.ErrNotPositive) {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: "Miktar pozitif olmalı"})
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		render.JSON(w, r, Response{Count: sess.Cart.Count(), Status: "ok"})
	}
}
