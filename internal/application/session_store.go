package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/ports"
)

// APIKeySecretKey is where the credential lives in the secret store.
const APIKeySecretKey = "immich-dupes/api/api_key"

// SessionStore is the process-wide session configuration. Reads are served
// from memory; every mutation is persisted best-effort, so persistence
// failures are logged and never returned.
type SessionStore struct {
	repo    ports.SessionRepository
	secrets ports.SecretStore
	logger  *slog.Logger

	mu      sync.RWMutex
	session domain.Session
}

// NewSessionStore builds an empty store. secrets may be nil, in which case
// the credential is kept inline in the persisted record.
func NewSessionStore(repo ports.SessionRepository, secrets ports.SecretStore, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SessionStore{
		repo:    repo,
		secrets: secrets,
		logger:  logger.With("store", "api"),
	}
}

// Load replaces the in-memory session with the persisted one. A credential
// that cannot be read from the secret store is left unset.
func (s *SessionStore) Load(ctx context.Context) error {
	record, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	session := domain.Session{
		Endpoint:        record.Endpoint,
		APIKey:          record.APIKey,
		BaseURLOverride: record.BaseURLOverride,
	}

	if record.APIKeyRef != "" && s.secrets != nil {
		apiKey, err := s.secrets.Get(ctx, record.APIKeyRef)
		switch {
		case err == nil:
			session.APIKey = apiKey
		case errors.Is(err, domain.ErrSecretNotFound):
			s.logger.Warn("api key reference points to a missing secret", "ref", record.APIKeyRef)
		default:
			s.logger.Warn("read api key secret", "ref", record.APIKeyRef, "error", err)
		}
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return nil
}

func (s *SessionStore) Endpoint() string {
	return s.Snapshot().Endpoint
}

func (s *SessionStore) APIKey() string {
	return s.Snapshot().APIKey
}

func (s *SessionStore) BaseURLOverride() string {
	return s.Snapshot().BaseURLOverride
}

func (s *SessionStore) Snapshot() domain.Session {
	if s == nil {
		return domain.Session{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

func (s *SessionStore) IsConfigured() bool {
	return s.Snapshot().IsConfigured()
}

func (s *SessionStore) ResolvedBaseURL() (string, error) {
	return s.Snapshot().ResolvedBaseURL()
}

func (s *SessionStore) BuildClientConfig() (domain.ClientConfig, error) {
	return s.Snapshot().ClientConfig()
}

// Set replaces all three fields at once. Values are not validated.
func (s *SessionStore) Set(ctx context.Context, endpoint, apiKey, baseURLOverride string) {
	next := domain.Session{
		Endpoint:        endpoint,
		APIKey:          apiKey,
		BaseURLOverride: baseURLOverride,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = next
	s.persist(ctx, next)
}

// Clear resets the session to its unconfigured state.
func (s *SessionStore) Clear(ctx context.Context) {
	s.Set(ctx, "", "", "")
}

// persist runs under the write lock so saves land in mutation order.
func (s *SessionStore) persist(ctx context.Context, session domain.Session) {
	record := domain.SessionRecord{
		Endpoint:        session.Endpoint,
		BaseURLOverride: session.BaseURLOverride,
	}

	switch {
	case s.secrets == nil:
		record.APIKey = session.APIKey
	case session.APIKey == "":
		if err := s.secrets.Delete(ctx, APIKeySecretKey); err != nil {
			s.logger.Warn("delete api key secret", "error", err)
		}
	default:
		if err := s.secrets.Put(ctx, APIKeySecretKey, session.APIKey); err != nil {
			s.logger.Warn("store api key secret, keeping it inline", "error", err)
			record.APIKey = session.APIKey
			break
		}
		record.APIKeyRef = APIKeySecretKey
	}

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("persist session", "error", err)
		return
	}

	s.logger.Debug("session persisted", "configured", session.IsConfigured())
}
