package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/route"
	"seftali/internal/upstream"
)

type ProfileSource interface {
	GetProfile(ctx context.Context) (*upstream.Profile, error)
}

type ResponseProfile struct {
	Profile *upstream.Profile `json:"profile,omitempty"`
	Route   *route.Info       `json:"route,omitempty"`
	Status  string            `json:"status"`
	Error   string            `json:"error,omitempty"`
}

// GetProfile returns the customer profile together with the derived route
// info; the route block is recomputed on every call and never cached.
func GetProfile(log *slog.Logger, src ProfileSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.profile.GetProfile"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		profile, err := src.GetProfile(ctx)
		if err != nil {
			log.Error("profile fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseProfile{Error: err.Error()})
			return
		}

		render.JSON(w, r, ResponseProfile{
			Profile: profile,
			Route:   route.Next(profile.RouteDays, time.Now()),
			Status:  "ok",
		})
	}
}
