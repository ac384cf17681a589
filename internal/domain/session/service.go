package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/listings/internal/domain/project"
)

const minJanitorInterval = 10 * time.Millisecond

// DefaultTTL is how long an idle session survives when no TTL is configured.
const DefaultTTL = 30 * time.Minute

// Config wires a Service.
type Config struct {
	Source  project.Source
	Catalog project.Options
	TTL     time.Duration
	Logger  *slog.Logger
	Now     func() time.Time
}

// Service owns the live catalog sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	source  project.Source
	catalog project.Options
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a new session service.
func NewService(cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	catalog := cfg.Catalog
	if catalog.Logger == nil {
		catalog.Logger = logger
	}
	return &Service{
		sessions: make(map[string]*Session),
		source:   cfg.Source,
		catalog:  catalog,
		ttl:      ttl,
		now:      now,
		logger:   logger,
	}
}

// Open starts a session with a fresh catalog and loads it. A failed load
// does not fail Open: the session is returned with its catalog in the
// failed state so the caller can show it.
func (s *Service) Open(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	sess := s.addLocked(uuid.NewString())
	s.mu.Unlock()

	if err := s.load(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Ensure returns the session with the given id, opening it if missing.
func (s *Service) Ensure(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastActivity = s.now()
		s.mu.Unlock()
		return sess, nil
	}
	sess := s.addLocked(id)
	s.mu.Unlock()

	if err := s.load(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns a live session and marks it active.
func (s *Service) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastActivity = s.now()
	return sess, nil
}

// Reload refetches the session's projects. The catalog's load error, if
// any, is returned as is.
func (s *Service) Reload(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Catalog.Load(ctx, s.source); err != nil {
		return sess, err
	}
	return sess, nil
}

// Close removes a session.
func (s *Service) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Debug("session closed", "session_id", id)
	return nil
}

// List returns live sessions, oldest first.
func (s *Service) List() []SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, SessionInfo{
			SessionID:    sess.ID,
			State:        sess.Catalog.State(),
			CreatedAt:    sess.CreatedAt,
			LastActivity: sess.lastActivity,
		})
	}
	slices.SortFunc(infos, func(a, b SessionInfo) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return infos
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActivity) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired idle sessions", "removed", removed, "remaining", len(s.sessions))
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done. A
// non-positive interval means half the TTL, never less than
// minJanitorInterval.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = max(s.ttl/2, minJanitorInterval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

func (s *Service) addLocked(id string) *Session {
	now := s.now()
	sess := &Session{
		ID:           id,
		CreatedAt:    now,
		Catalog:      project.NewCatalog(s.catalog),
		lastActivity: now,
	}
	s.sessions[id] = sess
	return sess
}

func (s *Service) load(ctx context.Context, sess *Session) error {
	err := sess.Catalog.Load(ctx, s.source)
	switch {
	case err == nil:
		s.logger.Debug("session opened", "session_id", sess.ID)
		return nil
	case project.IsLoadError(err), errors.Is(err, project.ErrSuperseded):
		s.logger.Warn("session opened without projects", "session_id", sess.ID, "error", err)
		return nil
	default:
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		return fmt.Errorf("loading session catalog: %w", err)
	}
}
