package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"seftali/internal/session"
	"seftali/internal/upstream"
)

type Response struct {
	ID                int64                      `json:"id"`
	Items             []upstream.WorkingCopyItem `json:"items"`
	Effective         []upstream.WorkingCopyItem `json:"effective"`
	DeletedByDelivery bool                       `json:"deleted_by_delivery"`
	Submitted         bool                       `json:"submitted"`
	Status            string                     `json:"status"`
}

func GetWorkingCopy(log *slog.Logger, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		render.JSON(w, r, Response{
			ID:                sess.Editor.ID(),
			Items:             sess.Editor.Items(),
			Effective:         sess.Editor.Effective(),
			DeletedByDelivery: sess.Editor.DeletedByDelivery(),
			Submitted:         sess.Editor.Submitted(),
			Status:            "ok",
		})
	}
}
