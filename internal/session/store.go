package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

// Reasons recorded when a session ends.
const (
	ReasonLogout        = "logout"
	ReasonUnauthorized  = "unauthorized"
	ReasonRestoreFailed = "restore_failed"
	ReasonExpired       = "expired"
	ReasonRevoked       = "credential_removed"
)

// Backend is the part of the admin API the session needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (domain.LoginResult, error)
	Me(ctx context.Context) (domain.Identity, error)
}

// Auditor is notified when a session starts or ends.
type Auditor interface {
	SessionStarted(ctx context.Context, user domain.Identity)
	SessionEnded(ctx context.Context, user domain.Identity, reason string)
}

// Option configures a Store.
type Option func(*Store)

// WithAuditor registers an auditor for session transitions.
func WithAuditor(a Auditor) Option {
	return func(s *Store) { s.auditor = a }
}

// WithClock overrides the clock used for the credential expiry pre-check.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is the single source of truth for who is logged in. The identity and
// the persisted credential change together under mu. A credential can also
// vanish from a shared or expiring store; Current reconciles that case.
type Store struct {
	mu      sync.RWMutex
	user    *domain.Identity
	loading bool

	creds   CredentialStore
	backend Backend
	auditor Auditor
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore returns an empty session in the loading state. Call Restore once
// at startup to settle it.
func NewStore(backend Backend, creds CredentialStore, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		loading: true,
		creds:   creds,
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Snapshot{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
		snap.Authenticated = true
	}
	return snap
}

// Credentials returns the credential store the session persists into.
func (s *Store) Credentials() CredentialStore {
	return s.creds
}

// Restore rebuilds the session from the persisted credential. Any failure
// leaves the session empty and the credential removed; it is logged, never
// returned. A Login that completes while Restore waits on the backend wins:
// the restore result is dropped and the new credential is kept.
func (s *Store) Restore(ctx context.Context) {
	defer s.settle()

	token, err := s.creds.Load(ctx)
	if errors.Is(err, ErrNoCredential) {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "credential store unreadable, starting signed out",
			slog.String("error", err.Error()),
		)
		s.discard(ctx, ReasonRestoreFailed, func(context.Context) bool { return s.loading })
		return
	}

	if credentialExpired(token, s.now()) {
		s.logger.InfoContext(ctx, "stored credential expired, starting signed out")
		s.discard(ctx, ReasonExpired, s.restoring(token))
		return
	}

	user, err := s.backend.Me(ctx)
	if err != nil {
		s.logger.InfoContext(ctx, "session restore failed, starting signed out",
			slog.String("error", err.Error()),
		)
		s.discard(ctx, ReasonRestoreFailed, s.restoring(token))
		return
	}

	s.mu.Lock()
	applied := s.restoring(token)(ctx)
	if applied {
		s.user = &user
	}
	s.mu.Unlock()

	if !applied {
		s.logger.InfoContext(ctx, "session restore superseded by login",
			slog.String("admin_id", user.ID),
		)
		return
	}
	s.logger.InfoContext(ctx, "session restored", slog.String("admin_id", user.ID))
	if s.auditor != nil {
		s.auditor.SessionStarted(ctx, user)
	}
}

// restoring reports, under mu, whether Restore still owns the session: no
// Login has settled it and token is still the stored credential.
func (s *Store) restoring(token string) func(context.Context) bool {
	return func(ctx context.Context) bool {
		if !s.loading {
			return false
		}
		current, err := s.creds.Load(ctx)
		return err == nil && current == token
	}
}

// Login authenticates against the backend and persists the returned
// credential. On failure the session is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return domain.Identity{}, err
	}
	if res.AccessToken == "" {
		return domain.Identity{}, fmt.Errorf("login: backend returned no access token")
	}

	s.mu.Lock()
	if err := s.creds.Save(ctx, res.AccessToken); err != nil {
		s.mu.Unlock()
		return domain.Identity{}, fmt.Errorf("persist credential: %w", err)
	}
	user := res.User
	s.user = &user
	s.loading = false
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "admin logged in", slog.String("admin_id", user.ID))
	if s.auditor != nil {
		s.auditor.SessionStarted(ctx, user)
	}
	return user, nil
}

// Logout clears the persisted credential and empties the session. It makes
// no network call and always leaves the session signed out.
func (s *Store) Logout(ctx context.Context) error {
	_, err := s.endIf(ctx, ReasonLogout, nil)
	return err
}

// Invalidate ends the session after the backend rejected the credential.
func (s *Store) Invalidate(ctx context.Context, reason string) error {
	_, err := s.endIf(ctx, reason, nil)
	return err
}

// HandleUnauthorized is the API client's hook for a 401. token is the
// credential the rejected request carried. The session ends only when token
// is still the stored credential, so a rejection of an older credential, or
// of a request that carried none, does not end a newer session.
func (s *Store) HandleUnauthorized(ctx context.Context, token string) {
	if token == "" {
		return
	}
	_, err := s.endIf(ctx, ReasonUnauthorized, func(ctx context.Context) bool {
		current, err := s.creds.Load(ctx)
		return err == nil && current == token
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to clear rejected credential",
			slog.String("error", err.Error()),
		)
	}
}

// Current returns the session state after checking that the signed-in
// identity still has its credential. A credential that expired or was
// removed by another console sharing the store ends the session here.
func (s *Store) Current(ctx context.Context) domain.Snapshot {
	snap := s.Snapshot()
	if !snap.Authenticated {
		return snap
	}

	_, err := s.creds.Load(ctx)
	if !errors.Is(err, ErrNoCredential) {
		return snap
	}
	ended, err := s.endIf(ctx, ReasonRevoked, func(ctx context.Context) bool {
		if s.user == nil {
			return false
		}
		_, err := s.creds.Load(ctx)
		return errors.Is(err, ErrNoCredential)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to clear revoked credential",
			slog.String("error", err.Error()),
		)
	}
	if ended {
		s.logger.InfoContext(ctx, "credential no longer stored, session ended")
	}
	return s.Snapshot()
}

// endIf clears the credential and the identity together. When cond is
// non-nil it is evaluated under mu and the session ends only if it holds.
func (s *Store) endIf(ctx context.Context, reason string, cond func(context.Context) bool) (bool, error) {
	s.mu.Lock()
	if cond != nil && !cond(ctx) {
		s.mu.Unlock()
		return false, nil
	}
	prev := s.user
	s.user = nil
	err := s.creds.Clear(ctx)
	s.mu.Unlock()

	if prev != nil {
		s.logger.InfoContext(ctx, "session ended",
			slog.String("admin_id", prev.ID),
			slog.String("reason", reason),
		)
		if s.auditor != nil {
			s.auditor.SessionEnded(ctx, *prev, reason)
		}
	}
	if err != nil {
		return true, fmt.Errorf("clear credential: %w", err)
	}
	return true, nil
}

func (s *Store) discard(ctx context.Context, reason string, cond func(context.Context) bool) {
	ended, err := s.endIf(ctx, reason, cond)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to discard credential",
			slog.String("error", err.Error()),
		)
	}
	if !ended {
		s.logger.InfoContext(ctx, "stored credential replaced during restore, keeping it")
	}
}

func (s *Store) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
