package screen

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/session"
)

type SessionResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

// StartSession opens a new screen session and hands the SPA its token. The
// session holds the draft cart, the working copy editor and the countdown
// presenter; nothing in it survives a restart.
func StartSession(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.screen.StartSession"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		s := store.Start()
		log.Info("screen session started", slog.String("token", s.Token))

		render.JSON(w, r, SessionResponse{Token: s.Token, Status: "ok"})
	}
}

// EndSession tears the session down; the countdown presenter is cancelled
// before the token disappears, so no timer outlives the screen.
func EndSession(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.screen.EndSession"

		token := r.Header.Get(session.TokenHeader)
		if token == "" {
			http.Error(w, "Oturum bulunamadı", http.StatusBadRequest)
			return
		}

		store.End(token)
		log.Info("screen session ended", slog.String("op", op), slog.String("token", token))

		render.JSON(w, r, SessionResponse{Status: "ok"})
	}
}
