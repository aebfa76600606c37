package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"seftali/internal/cart"
	"seftali/internal/session"
)

type ResponseCart struct {
	Items         []cart.Item     `json:"items"`
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"`
}

func GetCart(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		render.JSON(w, r, ResponseCart{
			Items:         sess.Cart.Items(),
			Count:         sess.Cart.Count(),
			TotalQuantity: sess.Cart.TotalQuantity(),
			TotalPrice:    sess.Cart.TotalPrice(),
			Status:        "ok",
		})
	}
}
