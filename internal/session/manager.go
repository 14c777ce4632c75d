package session

import (
	"sync"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultTTL is how long an idle session lives before it is dropped
	DefaultTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 30 * time.Second
)

// Session owns one store and its cart. Every call into the store goes
// through Do, which serializes access.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	store    *store.Store
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session store.
func (s *Session) Do(fn func(st *store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.store)
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager keeps the live sessions. The catalog is shared by all sessions and
// never modified; each session gets its own store built from it.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  []domain.Item
	ttl      time.Duration
	log      *zap.Logger

	stopCleanup chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

type Option func(*Manager)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a manager over catalog and starts the cleanup loop.
// Call Close to stop it.
func NewManager(catalog []domain.Item, opts ...Option) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		catalog:     domain.CloneItems(catalog),
		ttl:         DefaultTTL,
		log:         zap.NewNop(),
		stopCleanup: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.wg.Add(1)
	go m.cleanupLoop(CleanupInterval)

	return m
}

// cleanupLoop periodically drops idle sessions
func (m *Manager) cleanupLoop(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSessions(time.Now())
		case <-m.stopCleanup:
			return
		}
	}
}

// expireSessions removes every session idle for longer than the TTL
func (m *Manager) expireSessions(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			m.log.Info("session expired", zap.String("session_id", id), zap.Duration("age", now.Sub(s.CreatedAt)))
		}
	}
}

// Create starts a new session with an empty cart.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		store:     store.New(m.catalog),
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session_id", s.ID))
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrSessionNotFound, "session %q", id)
	}
	return s, nil
}

// Delete ends a session and discards its cart.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return errors.Wrapf(domain.ErrSessionNotFound, "session %q", id)
	}
	delete(m.sessions, id)
	m.log.Info("session ended", zap.String("session_id", id), zap.Duration("age", time.Since(s.CreatedAt)))
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the background cleanup and waits for it to finish
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.stopCleanup)
	})
	m.wg.Wait()
	return nil
}
