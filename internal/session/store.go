package session

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/events"
	"github.com/spec-kit/quiz-client/internal/token"
)

// Store owns the persisted credential and the identity derived from it. It is
// the only writer of either; every change is published on the dispatcher.
type Store struct {
	mu         sync.RWMutex
	path       string
	credential string
	identity   *domain.Identity
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewStore builds a session store persisting the credential at the configured
// file path.
func NewStore(cfg config.SessionConfig, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		path:       cfg.TokenFile,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Load reads a previously persisted credential. An expired credential is
// discarded as if logged out; a live one derives the identity and announces
// it.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read persisted credential", zap.Error(err))
		}
		return
	}

	credential := string(data)
	if credential == "" {
		// An empty file is no credential at all; stay logged out.
		return
	}
	claims := token.Decode(credential)
	if claims != nil && claims.Expired(s.now()) {
		s.logger.Info("persisted credential expired, discarding")
		if err := os.Remove(s.path); err != nil {
			s.logger.Warn("failed to remove expired credential", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.credential = credential
	s.identity = deriveIdentity(claims, "user")
	identity := s.identity
	s.mu.Unlock()

	s.publishIdentity(identity)
}

// Login persists the credential and derives the identity from its claims,
// falling back to the supplied username when the token carries neither a
// subject nor a username claim.
func (s *Store) Login(credential, fallbackUsername string) {
	if err := s.persist(credential); err != nil {
		s.logger.Warn("failed to persist credential", zap.Error(err))
	}

	claims := token.Decode(credential)

	s.mu.Lock()
	s.credential = credential
	s.identity = deriveIdentity(claims, fallbackUsername)
	identity := s.identity
	s.mu.Unlock()

	s.publishIdentity(identity)
}

// Logout clears the persisted credential and the identity unconditionally.
func (s *Store) Logout() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove persisted credential", zap.Error(err))
	}

	s.mu.Lock()
	s.credential = ""
	s.identity = nil
	s.mu.Unlock()

	s.publishIdentity(nil)
}

// Token returns the currently persisted credential, empty when logged out.
// The API client calls this on every request so a credential cleared between
// calls is honored immediately.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Identity returns the identity derived from the current credential, nil when
// logged out.
func (s *Store) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Store) persist(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(credential), 0o600)
}

func (s *Store) publishIdentity(identity *domain.Identity) {
	s.dispatcher.Publish(events.Event{
		Type:    events.EventIdentityChanged,
		Payload: events.IdentityChangedPayload{Identity: identity},
	})
}

func deriveIdentity(claims *token.Claims, fallbackUsername string) *domain.Identity {
	username := fallbackUsername
	if claims != nil {
		if claims.Subject != "" {
			username = claims.Subject
		} else if claims.Username != "" {
			username = claims.Username
		}
	}
	return &domain.Identity{
		Username: username,
		Roles:    token.ExtractRoles(claims),
	}
}
