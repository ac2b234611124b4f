// Package viewer implements the client-side view models of the
// marketplace: session state, catalog browsing, the job-detail
// acceptance workflow, authoring, accepted-task management and
// profile views. Every type guards its state with a mutex and takes a
// context.Context on network operations; views poll accessors rather
// than receiving callbacks.
package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// Session gating errors.
var (
	ErrSignInRequired = errors.New("viewer: sign in required")
	ErrSessionLoading = errors.New("viewer: session restore in progress")
)

// Session is the process-wide identity provider. CurrentUser is nil
// while unauthenticated and during the initial restore; Loading is
// true only until Restore has run once. All other view models read
// the session, only the sign-in/out operations below mutate it.
type Session struct {
	api *client.Client

	mu      sync.RWMutex
	current *model.Session
	loading bool
}

// NewSession wraps an API client. The session starts in the loading
// state until Restore resolves the persisted token, if any.
func NewSession(api *client.Client) *Session {
	return &Session{api: api, loading: true}
}

// CurrentUser returns the signed-in identity, or nil.
func (s *Session) CurrentUser() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loading reports whether the initial session restore is still pending.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Restore resolves the client's stored token into a session. A missing
// or rejected token leaves the viewer anonymous without error; only
// transport failures are returned, and even those end the loading
// state so gated views can settle.
func (s *Session) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.api.Token() == "" {
		return nil
	}

	sess, err := s.api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			s.api.SetToken("")
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// SignUp registers a new account and signs the viewer in. Failures
// come back as *client.APIError with a human-readable message; callers
// surface them as transient notifications.
func (s *Session) SignUp(ctx context.Context, email, password, displayName string) error {
	user, err := s.api.Register(ctx, client.Credentials{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return err
	}
	s.adopt(user)
	return nil
}

// SignIn authenticates with password credentials.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.adopt(user)
	return nil
}

// SignInWithProvider adopts a session token minted by the federated
// callback and resolves it into an identity.
func (s *Session) SignInWithProvider(ctx context.Context, token string) error {
	s.api.SetToken(token)
	sess, err := s.api.Me(ctx)
	if err != nil {
		s.api.SetToken("")
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SignOut revokes the session server-side and clears local identity.
// Local state is cleared even when revocation fails, so the viewer is
// never stuck signed in.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.api.Logout(ctx)

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return err
}

// RequireUser is the gate for session-only views. It returns the
// current identity, ErrSessionLoading while the restore is pending, or
// ErrSignInRequired once resolved anonymous; the caller redirects to
// sign-in and preserves the requested location.
func (s *Session) RequireUser() (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loading {
		return nil, ErrSessionLoading
	}
	if s.current == nil {
		return nil, ErrSignInRequired
	}
	return s.current, nil
}

func (s *Session) adopt(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &model.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Provider:    user.Provider,
	}
	s.loading = false
}
