package start

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/session"
	"seftali/internal/upstream"
	"seftali/internal/workingcopy"
)

type Starter interface {
	StartWorkingCopy(ctx context.Context) (*upstream.WorkingCopy, error)
}

type Response struct {
	ID                int64                      `json:"id"`
	Items             []upstream.WorkingCopyItem `json:"items"`
	DeletedByDelivery bool                       `json:"deleted_by_delivery"`
	Status            string                     `json:"status"`
	Error             string                     `json:"error,omitempty"`
}

// StartWorkingCopy opens the editor on a server-created working copy. A
// deleted_by_delivery status from the server is passed through as a banner
// flag; the fresh copy stays fully editable.
func StartWorkingCopy(log *slog.Logger, svc Starter, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workingcopy.StartWorkingCopy"

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

		wc, err := svc.StartWorkingCopy(ctx)
		if err != nil {
			log.Error("start working copy failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, Response{Error: err.Error()})
			return
		}

		editor := workingcopy.NewEditor(wc)

		sess.Lock()
		sess.Editor = editor
		sess.Unlock()

		log.Info("working copy started", slog.Int64("id", wc.ID))

		render.JSON(w, r, Response{
			ID:                editor.ID(),
			Items:             editor.Items(),
			DeletedByDelivery: editor.DeletedByDelivery(),
			Status:            "ok",
		})
	}
}
