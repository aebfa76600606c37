package update

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"seftali/internal/session"
)

type Response struct {
	Count         int    `json:"count"`
	TotalQuantity int    `json:"total_quantity"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

type AdjustRequest struct {
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
}

// AdjustCartItem applies a +/- step to one cart line. Hitting zero removes
// the line; adjusting a product that is not in the cart is a no-op.
func AdjustCartItem(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cart.AdjustCartItem"

		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		var req AdjustRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		sess.Cart.Adjust(req.ProductID, req.Delta)

		render.JSON(w, r, Response{
			Count:         sess.Cart.Count(),
			TotalQuantity: sess.Cart.TotalQuantity(),
			Status:        "ok",
		})
	}
}

type SetQuantityRequest struct {
	ProductID int64  `json:"product_id"`
	Value     string `json:"value"`
}

// SetCartQuantity sets a line's quantity from raw input; a failed parse or a
// non-positive value removes the line entirely.
func SetCartQuantity(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.cart.SetCartQuantity"

		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		var req SetQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		sess.Cart.SetQuantity(req.ProductID, req.Value)

		render.JSON(w, r, Response{
			Count:         sess.Cart.Count(),
			TotalQuantity: sess.Cart.TotalQuantity(),
			Status:        "ok",
		})
	}
}

// RemoveCartItem deletes the line unconditionally.
func RemoveCartItem(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
		if err != nil {
			http.Error(w, "Geçersiz ürün", http.StatusBadRequest)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		sess.Cart.Remove(productID)

		render.JSON(w, r, Response{
			Count:         sess.Cart.Count(),
			TotalQuantity: sess.Cart.TotalQuantity(),
			Status:        "ok",
		})
	}
}
