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

type DraftSource interface {
	GetDraft(ctx context.Context) ([]upstream.DraftSuggestion, error)
}

type ResponseDraft struct {
	Suggestions []upstream.DraftSuggestion `json:"suggestions"`
	Status      string                     `json:"status"`
	Error       string                     `json:"error,omitempty"`
}

// GetDraft returns the server-suggested order quantities the cart screen
// seeds from.
func GetDraft(log *slog.Logger, src DraftSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.draft.GetDraft"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		suggestions, err := src.GetDraft(ctx)
		if err != nil {
			log.Error("draft fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseDraft{Error: err.Error()})
			return
		}

		if suggestions == nil {
			suggestions = []upstream.DraftSuggestion{}
		}

		render.JSON(w, r, ResponseDraft{Suggestions: suggestions, Status: "ok"})
	}
}
