package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EmitterFactory builds the emitter for a new review session.
type EmitterFactory func(sessionID uuid.UUID) Emitter

// Service keeps the in-memory review sessions. Each session is one reviewer
// looking at one visit; sessions are dropped when closed or idle, and
// nothing about them outlives the process.
type Service struct {
	catalog  Catalog
	emitters EmitterFactory
	idle     time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	mu       sync.Mutex
	ctrl     *Controller
	lastSeen time.Time
}

func NewService(catalog Catalog, emitters EmitterFactory, idle time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		emitters: emitters,
		idle:     idle,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Open starts a session for the route. When the route does not resolve, no
// session is created and the not-found view is returned with a nil id.
func (s *Service) Open(route Route) (uuid.UUID, View) {
	id := uuid.New()
	var emit Emitter
	if s.emitters != nil {
		emit = s.emitters(id)
	}
	ctrl := Open(s.catalog, route, emit)
	ctrl.SetClock(s.now)
	if !ctrl.Found() {
		return uuid.Nil, ctrl.View()
	}

	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug().Str("session_id", id.String()).Str("visit_id", route.VisitID).Msg("review session opened")
	return id, ctrl.View()
}

// View returns the session's read model.
func (s *Service) View(id uuid.UUID) (View, error) {
	return s.Do(id, func(*Controller) error { return nil })
}

// Do runs fn against the session's controller while holding the session
// lock and returns the view after fn. The view reflects fn's changes even
// when fn fails part way.
func (s *Service) Do(id uuid.UUID, fn func(*Controller) error) (View, error) {
	sess, err := s.get(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	err = fn(sess.ctrl)
	return sess.ctrl.View(), err
}

// Close ends a session. Closing an unknown session is not an error.
func (s *Service) Close(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the configured timeout and
// returns how many were dropped.
func (s *Service) Sweep() int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info().Int("dropped", n).Msg("idle review sessions swept")
			}
		}
	}
}

func (s *Service) get(id uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
