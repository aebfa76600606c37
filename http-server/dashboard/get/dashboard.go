package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"seftali/internal/countdown"
	"seftali/internal/route"
	"seftali/internal/session"
	"seftali/internal/upstream"
)

type DashboardSource interface {
	GetProfile(ctx context.Context) (*upstream.Profile, error)
	GetDraft(ctx context.Context) ([]upstream.DraftSuggestion, error)
	PendingDeliveries(ctx context.Context) ([]upstream.Delivery, error)
	PendingVariance(ctx context.Context) ([]upstream.VarianceEvent, error)
}

type ResponseDashboard struct {
	Profile           *upstream.Profile          `json:"profile,omitempty"`
	Draft             []upstream.DraftSuggestion `json:"draft"`
	PendingDeliveries []upstream.Delivery        `json:"pending_deliveries"`
	PendingVariance   []upstream.VarianceEvent   `json:"pending_variance"`
	Route             *route.Info                `json:"route,omitempty"`
	Countdown         countdown.State            `json:"countdown"`
	Status            string                     `json:"status"`
	Error             string                     `json:"error,omitempty"`
}

// GetDashboard joins the four independent fetches the main screen needs. The
// join is all-or-nothing: if any fetch fails, no partial state reaches the
// SPA and one error is surfaced.
func GetDashboard(log *slog.Logger, src DashboardSource, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.dashboard.GetDashboard"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			profile    *upstream.Profile
			draft      []upstream.DraftSuggestion
			deliveries []upstream.Delivery
			variance   []upstream.VarianceEvent
		)

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			profile, err = src.GetProfile(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			draft, err = src.GetDraft(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			deliveries, err = src.PendingDeliveries(gCtx)
			return err
		})
		g.Go(func() error {
			var err error
			variance, err = src.PendingVariance(gCtx)
			return err
		})

		if err := g.Wait(); err != nil {
			log.Error("dashboard fetch failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseDashboard{Error: err.Error()})
			return
		}

		now := time.Now()
		info := route.Next(profile.RouteDays, now)

		var deadline *time.Time
		if info != nil {
			deadline = info.Deadline
		}
		if sess, ok := store.FromRequest(r); ok {
			sess.AttachCountdown(deadline)
		}

		render.JSON(w, r, ResponseDashboard{
			Profile:           profile,
			Draft:             draft,
			PendingDeliveries: deliveries,
			PendingVariance:   variance,
			Route:             info,
			Countdown:         countdown.StateAt(deadline, now),
			Status:            "ok",
		})
	}
}
