package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/session"
	"seftali/internal/workingcopy"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SubmitWorkingCopy sends the working copy off as an order. Submission is
// terminal: the screen must start a new working copy for further edits.
func SubmitWorkingCopy(log *slog.Logger, svc workingcopy.Persister, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workingcopy.SubmitWorkingCopy"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, ok := store.FromRequest(r)
		if !ok {
			http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
			return
		}

		sess.Lock()
		defer sess.Unlock()

		if sess.Editor == nil {
			http.Error(w, "Çalışma kopyası yok", http.StatusNotFound)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := sess.Editor.Submit(ctx, svc); err != nil {
			switch {
			case errors.Is(err, workingcopy.ErrNothingSelected):
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: "En az bir ürün seçin"})
			case errors.Is(err, workingcopy.ErrSubmitted):
				w.WriteHeader(http.StatusConflict)
				render.JSON(w, r, Response{Error: "Sipariş zaten gönderildi"})
			default:
				log.Error("working copy submit failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusBadGateway)
				render.JSON(w, r, Response{Error: err.Error()})
			}
			return
		}

		log.Info("working copy submitted", slog.Int64("id", sess.Editor.ID()))
		render.JSON(w, r, Response{Status: "ok"})
	}
}
