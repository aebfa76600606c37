package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"seftali/internal/countdown"
	"seftali/internal/session"
)

type ResponseCountdown struct {
	Countdown countdown.State `json:"countdown"`
	Status    string          `json:"status"`
}

// GetCountdown returns the session presenter's current state; without a
// session or presenter the countdown is idle and nothing is shown.
func GetCountdown(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		render.JSON(w, r, ResponseCountdown{
			Countdown: sess.Countdown(),
			Status:    "ok",
		})
	}
}
