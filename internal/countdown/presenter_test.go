package countdown

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func deadlineAt() time.Time {
	return time.Date(2024, 1, 9, 16, 0, 0, 0, time.UTC)
}

func TestStateAt_Normal(t *testing.T) {
	d := deadlineAt()

	state := StateAt(&d, d.Add(-26*time.Hour))
	assert.Equal(t, PhaseNormal, state.Phase)
	assert.Equal(t, "1 gün 02:00:00", state.Message)
	assert.True(t, state.OrderingEnabled)

	state = StateAt(&d, d.Add(-5*time.Hour))
	assert.Equal(t, PhaseNormal, state.Phase)
	assert.Equal(t, "05:00:00", state.Message)
}

func TestStateAt_UrgentTicking(t *testing.T) {
	d := deadlineAt()

	// the four hour boundary itself is already urgent
	state := StateAt(&d, d.Add(-4*time.Hour))
	assert.Equal(t, PhaseUrgent, state.Phase)
	assert.Equal(t, "04:00:00", state.Message)
	assert.True(t, state.OrderingEnabled)

	state = StateAt(&d, d.Add(-time.Second))
	assert.Equal(t, PhaseUrgent, state.Phase)
	assert.Equal(t, "00:00:01", state.Message)
}

func TestStateAt_GraceWindowFixedMessage(t *testing.T) {
	d := deadlineAt()

	state := StateAt(&d, d)
	assert.Equal(t, PhaseUrgent, state.Phase)
	assert.Equal(t, "son 30 dakika", state.Message)
	assert.True(t, state.OrderingEnabled)

	state = StateAt(&d, d.Add(29*time.Minute+59*time.Second))
	assert.Equal(t, "son 30 dakika", state.Message)
}

func TestStateAt_Expired(t *testing.T) {
	d := deadlineAt()

	state := StateAt(&d, d.Add(30*time.Minute))
	assert.Equal(t, PhaseExpired, state.Phase)
	assert.Equal(t, "süre doldu", state.Message)
	assert.False(t, state.OrderingEnabled)

	// one minute past the grace boundary
	state = StateAt(&d, d.Add(31*time.Minute))
	assert.Equal(t, PhaseExpired, state.Phase)
	assert.False(t, state.OrderingEnabled)
}

func TestStateAt_NoDeadline(t *testing.T) {
	state := StateAt(nil, time.Now())
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Empty(t, state.Message)
}

func TestPresenter_StopsOnCancel(t *testing.T) {
	d := time.Now().Add(time.Hour)

	var calls int64
	p := NewPresenter(&d)
	p.interval = time.Millisecond
	p.now = func() time.Time {
		atomic.AddInt64(&calls, 1)
		return time.Now()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// let it tick a few times, then tear down
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	after := atomic.LoadInt64(&calls)
	assert.Greater(t, after, int64(0), "presenter should have ticked")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&calls), "no ticks after teardown")
}

func TestPresenter_StateReflectsDeadline(t *testing.T) {
	d := time.Now().Add(time.Hour)
	p := NewPresenter(&d)

	state := p.State()
	assert.Equal(t, PhaseUrgent, state.Phase)
	assert.True(t, state.OrderingEnabled)
}
