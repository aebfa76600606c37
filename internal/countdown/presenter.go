package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseNormal  Phase = "normal"
	PhaseUrgent  Phase = "urgent"
	PhaseExpired Phase = "expired"
)

const (
	urgentWindow = 4 * time.Hour
	graceWindow  = 30 * time.Minute
)

// State is the display state the screen renders. OrderingEnabled goes false
// only once the grace window is over.
type State struct {
	Phase           Phase  `json:"phase"`
	Message         string `json:"message"`
	OrderingEnabled bool   `json:"ordering_enabled"`
}

// StateAt derives the countdown state from the deadline and the clock. Pure;
// the presenter calls this once per tick. A nil deadline means no route cycle
// is open and the screen shows nothing.
func StateAt(deadline *time.Time, now time.Time) State {
	if deadline == nil {
		return State{Phase: PhaseIdle, OrderingEnabled: true}
	}

	late := deadline.Add(graceWindow)
	switch {
	case now.Before(deadline.Add(-urgentWindow)):
		return State{
			Phase:           PhaseNormal,
			Message:         formatRemaining(deadline.Sub(now)),
			OrderingEnabled: true,
		}
	case now.Before(*deadline):
		return State{
			Phase:           PhaseUrgent,
			Message:         formatRemaining(deadline.Sub(now)),
			OrderingEnabled: true,
		}
	case now.Before(late):
		return State{
			Phase:           PhaseUrgent,
			Message:         "son 30 dakika",
			OrderingEnabled: true,
		}
	default:
		return State{
			Phase:           PhaseExpired,
			Message:         "süre doldu",
			OrderingEnabled: false,
		}
	}
}

// formatRemaining renders "N gün HH:MM:SS"; the day part is dropped when zero.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if days > 0 {
		return fmt.Sprintf("%d gün %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Presenter recomputes the countdown state once per second for one visible
// screen. It is owned by the screen session and must be stopped by cancelling
// the context passed to Run; after Run returns no further ticks happen.
type Presenter struct {
	mu       sync.Mutex
	deadline *time.Time
	state    State
	interval time.Duration
	now      func() time.Time
}

func NewPresenter(deadline *time.Time) *Presenter {
	p := &Presenter{
		deadline: deadline,
		interval: time.Second,
		now:      time.Now,
	}
	p.state = StateAt(deadline, p.now())
	return p
}

// Run blocks, ticking at the presenter interval until ctx is cancelled.
func (p *Presenter) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			p.state = StateAt(p.deadline, p.now())
			p.mu.Unlock()
		}
	}
}

func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
