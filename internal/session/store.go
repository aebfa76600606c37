package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"seftali/internal/cart"
	"seftali/internal/countdown"
	"seftali/internal/workingcopy"
)

const TokenHeader = "X-Session-Token"

// Session is the state of one screen session: the draft cart, the working
// copy editor, and the countdown presenter. None of it survives a restart.
// The mutex serializes handler access; within a session there is exactly one
// logical writer, the active user.
type Session struct {
	Token     string
	CreatedAt time.Time

	mu     sync.Mutex
	Cart   *cart.Cart
	Editor *workingcopy.Editor

	presenter *countdown.Presenter
	cancel    context.CancelFunc
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AttachCountdown starts the 1 Hz presenter for the given deadline,
// replacing (and stopping) any previous one.
func (s *Session) AttachCountdown(deadline *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.presenter = countdown.NewPresenter(deadline)
	s.cancel = cancel
	go s.presenter.Run(ctx)
}

// Countdown returns the current countdown state, idle when no presenter is
// attached.
func (s *Session) Countdown() countdown.State {
	s.mu.Lock()
	p := s.presenter
	s.mu.Unlock()

	if p == nil {
		return countdown.StateAt(nil, time.Now())
	}
	return p.State()
}

func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.presenter = nil
	}
}

// Store keeps sessions by token.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Start() *Session {
	s := &Session{
		Token:     uuid.NewString(),
		CreatedAt: time.Now(),
		Cart:      cart.New(),
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.Token] = s
	return s
}

func (st *Store) Find(token string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[token]
	return s, ok
}

// End tears the session down, cancelling its countdown presenter.
func (st *Store) End(token string) {
	st.mu.Lock()
	s, ok := st.sessions[token]
	delete(st.sessions, token)
	st.mu.Unlock()

	if ok {
		s.stop()
	}
}

// FromRequest resolves the screen session from the request's token header.
func (st *Store) FromRequest(r *http.Request) (*Session, bool) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		return nil, false
	}
	return st.Find(token)
}
