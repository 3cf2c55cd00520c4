// Package store holds the state containers exposed to the rendering
// layer: Session, Cart, and Notifications. Each offers snapshot reads,
// mutation operations, and a change subscription.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/tonguers/loja/internal/domain"
)

// Persistence keys owned by the Session store. Both registries are single
// JSON documents, so rewriting one is a single backend write.
const (
	usersKey       = "auth/users"       // email -> domain.User
	credentialsKey = "auth/credentials" // email -> plaintext secret
	sessionKey     = "auth/session"     // current domain.User; absent = logged out
	otpKeyPrefix   = "auth/otp/"        // + email -> 6-digit code
)

// Session owns the current authenticated identity, the mock user and
// credential registries, and one-time-code issuance and verification.
//
// All mutations run under one mutex, so the multi-key write sequence of an
// email change (user registry, credential registry, session record) is
// observably atomic to concurrent readers. A crash between those writes
// can still persist inconsistent registries; there is no cross-key
// transaction in the backend contract.
type Session struct {
	backend domain.Backend

	mu      sync.Mutex
	current *domain.User

	bc broadcaster
}

// NewSession creates the store and restores the persisted session record.
// A failing or unreadable record is logged and treated as logged out.
func NewSession(ctx context.Context, backend domain.Backend) *Session {
	s := &Session{backend: backend}

	raw, err := backend.Get(ctx, sessionKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		slog.Warn("loading session failed, starting logged out", "error", err)
	default:
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			slog.Warn("discarding unreadable session record", "error", err)
		} else {
			s.current = &u
		}
	}
	return s
}

// Current returns a copy of the signed-in user, or nil when logged out.
func (s *Session) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Subscribe registers fn to run after every session change. The returned
// function cancels the subscription.
func (s *Session) Subscribe(fn func()) (cancel func()) {
	return s.bc.subscribe(fn)
}

// Register creates an unverified account and signs it in. It fails with
// domain.ErrConflict when the email is already registered.
func (s *Session) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	user, err := s.register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.bc.notify()
	return user, nil
}

func (s *Session) register(ctx context.Context, email, password, name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	if _, exists := creds[email]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflict, email)
	}

	user := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}
	users[email] = user
	creds[email] = password

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := s.saveCredentials(ctx, creds); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, user); err != nil {
		return nil, err
	}

	s.current = &user
	return &user, nil
}

// Authenticate signs in an existing account. Unknown emails and secret
// mismatches both fail with domain.ErrInvalidCredentials.
func (s *Session) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.bc.notify()
	return user, nil
}

func (s *Session) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	user, knownUser := users[email]
	secret, knownSecret := creds[email]
	if !knownUser || !knownSecret || secret != password {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.saveSession(ctx, user); err != nil {
		return nil, err
	}

	s.current = &user
	return &user, nil
}

// EndSession clears the active session. It is idempotent: ending an
// already-ended session succeeds.
func (s *Session) EndSession(ctx context.Context) error {
	if err := s.endSession(ctx); err != nil {
		return err
	}
	s.bc.notify()
	return nil
}

func (s *Session) endSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx, sessionKey); err != nil {
		return fmt.Errorf("%w: clear session: %w", domain.ErrStorageFailure, err)
	}
	s.current = nil
	return nil
}

// IssueCode generates a 6-digit one-time code for the email, overwriting
// any prior unconsumed code, and returns it. Codes do not expire.
func (s *Session) IssueCode(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := strconv.Itoa(100000 + rand.IntN(900000))
	if err := s.backend.Set(ctx, otpKeyPrefix+email, code); err != nil {
		return "", fmt.Errorf("%w: store one-time code: %w", domain.ErrStorageFailure, err)
	}
	return code, nil
}

// VerifyCode checks the code issued for the email, consumes it, and signs
// the matching account in. A missing or mismatched code fails with
// domain.ErrInvalidCode; a missing account with domain.ErrNotFound.
func (s *Session) VerifyCode(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.verifyCode(ctx, email, code)
	if err != nil {
		return nil, err
	}
	s.bc.notify()
	return user, nil
}

func (s *Session) verifyCode(ctx context.Context, email, code string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.backend.Get(ctx, otpKeyPrefix+email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCode
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load one-time code: %w", domain.ErrStorageFailure, err)
	}
	if stored != code {
		return nil, domain.ErrInvalidCode
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok {
		return nil, fmt.Errorf("%w: no account for %s", domain.ErrNotFound, email)
	}

	if err := s.saveSession(ctx, user); err != nil {
		return nil, err
	}
	if err := s.backend.Remove(ctx, otpKeyPrefix+email); err != nil {
		return nil, fmt.Errorf("%w: consume one-time code: %w", domain.ErrStorageFailure, err)
	}

	s.current = &user
	return &user, nil
}

// UpdateCurrentUser merges the patch into the signed-in user's registry
// entry and the session record. An email change rekeys both registries so
// the credential entry stays in lockstep with the account.
func (s *Session) UpdateCurrentUser(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.updateCurrentUser(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.bc.notify()
	return user, nil
}

func (s *Session) updateCurrentUser(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domain.ErrNoActiveSession
	}
	oldEmail := s.current.Email

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := users[oldEmail]; !ok {
		return nil, fmt.Errorf("%w: no account for %s", domain.ErrNotFound, oldEmail)
	}

	updated := *s.current
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Verified != nil {
		updated.Verified = *patch.Verified
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}

	if updated.Email != oldEmail {
		delete(users, oldEmail)
	}
	users[updated.Email] = updated
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	if updated.Email != oldEmail {
		creds, err := s.loadCredentials(ctx)
		if err != nil {
			return nil, err
		}
		if secret, ok := creds[oldEmail]; ok {
			delete(creds, oldEmail)
			creds[updated.Email] = secret
			if err := s.saveCredentials(ctx, creds); err != nil {
				return nil, err
			}
		}
	}

	if err := s.saveSession(ctx, updated); err != nil {
		return nil, err
	}

	s.current = &updated
	return &updated, nil
}

func (s *Session) loadUsers(ctx context.Context) (map[string]domain.User, error) {
	users := make(map[string]domain.User)
	if err := s.loadRegistry(ctx, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Session) loadCredentials(ctx context.Context) (map[string]string, error) {
	creds := make(map[string]string)
	if err := s.loadRegistry(ctx, credentialsKey, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// loadRegistry fills dst from the JSON document at key. A missing key
// leaves dst empty.
func (s *Session) loadRegistry(ctx context.Context, key string, dst any) error {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", domain.ErrStorageFailure, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrStorageFailure, key, err)
	}
	return nil
}

func (s *Session) saveUsers(ctx context.Context, users map[string]domain.User) error {
	return s.saveRegistry(ctx, usersKey, users)
}

func (s *Session) saveCredentials(ctx context.Context, creds map[string]string) error {
	return s.saveRegistry(ctx, credentialsKey, creds)
}

func (s *Session) saveRegistry(ctx context.Context, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrStorageFailure, key, err)
	}
	if err := s.backend.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrStorageFailure, key, err)
	}
	return nil
}

func (s *Session) saveSession(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", domain.ErrStorageFailure, err)
	}
	if err := s.backend.Set(ctx, sessionKey, string(raw)); err != nil {
		return fmt.Errorf("%w: save session: %w", domain.ErrStorageFailure, err)
	}
	return nil
}
