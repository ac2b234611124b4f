package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// Service errors for account operations.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrMissingAuthFields  = errors.New("email and password are required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrSessionExpired     = errors.New("session expired or not found")
	ErrOAuthNotConfigured = errors.New("google sign-in is not configured")
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AccountService handles registration, sign-in and session management.
type AccountService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	metrics    metrics.Recorder
	sessionTTL time.Duration
	oauth      *oauth2.Config
	httpClient *http.Client
}

// AccountConfig carries the account-service knobs pulled from app config.
type AccountConfig struct {
	SessionTTL         time.Duration
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
}

// NewAccountService creates a new AccountService. Google sign-in is
// enabled only when both client credentials are set.
func NewAccountService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder, cfg AccountConfig) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	s := &AccountService{
		repo:       repo,
		cache:      c,
		metrics:    recorder,
		sessionTTL: cfg.SessionTTL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		s.oauth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  strings.TrimRight(cfg.BaseURL, "/") + "/api/v1/auth/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	return s
}

// RegisterInput defines input for creating a password account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	PhotoURL    string
}

// Register creates a password-based account and opens a session for it.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, "", ErrMissingAuthFields
	}
	if len(input.Password) < 6 {
		return nil, "", ErrWeakPassword
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PhotoURL:     strings.TrimSpace(input.PhotoURL),
		Provider:     model.ProviderPassword,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncSignIn("register")

	return user, token, nil
}

// Login verifies password credentials and opens a session.
// Unknown email and wrong password return the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrMissingAuthFields
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncSignIn("failure")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.PasswordHash == "" {
		// Federated account; there is no password to check
		s.metrics.IncSignIn("failure")
		return nil, "", ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.metrics.IncSignIn("failure")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncSignIn("password")

	return user, token, nil
}

// Logout revokes the session behind the given token. Unknown tokens are
// a no-op so repeated sign-out never errors.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if !auth.ValidateTokenFormat(token) {
		return nil
	}
	return s.cache.DeleteSession(ctx, auth.QuickHash(token))
}

// Restore resolves a bearer token back into its session.
func (s *AccountService) Restore(ctx context.Context, token string) (*model.Session, error) {
	if !auth.ValidateTokenFormat(token) {
		return nil, ErrSessionExpired
	}

	sess, err := s.cache.GetSession(ctx, auth.QuickHash(token))
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	return sess, nil
}

// GoogleAuthURL returns the Google consent-screen URL for the given
// CSRF state value.
func (s *AccountService) GoogleAuthURL(state string) (string, error) {
	if s.oauth == nil {
		return "", ErrOAuthNotConfigured
	}
	return s.oauth.AuthCodeURL(state), nil
}

// googleUserInfo is the subset of Google's userinfo response we use.
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, resolves the Google
// identity to a local account (creating one on first sign-in) and opens
// a session.
func (s *AccountService) GoogleCallback(ctx context.Context, code string) (*model.User, string, error) {
	if s.oauth == nil {
		return nil, "", ErrOAuthNotConfigured
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.metrics.IncSignIn("failure")
		return nil, "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, tok)
	if err != nil {
		s.metrics.IncSignIn("failure")
		return nil, "", err
	}
	if info.Email == "" {
		s.metrics.IncSignIn("failure")
		return nil, "", errors.New("google userinfo response missing email")
	}

	user, err := s.repo.GetOrCreateUser(ctx, &model.User{
		ID:          ulid.Make().String(),
		Email:       strings.ToLower(info.Email),
		DisplayName: info.Name,
		PhotoURL:    info.Picture,
		Provider:    model.ProviderGoogle,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncSignIn("google")

	return user, token, nil
}

func (s *AccountService) fetchGoogleUserInfo(ctx context.Context, tok *oauth2.Token) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo request failed: status %d: %s", resp.StatusCode, body)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	return &info, nil
}

// openSession issues a fresh bearer token and stores the session under
// its hash.
func (s *AccountService) openSession(ctx context.Context, user *model.User) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	sess := &model.Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Provider:    user.Provider,
	}

	if err := s.cache.SetSession(ctx, auth.QuickHash(token), sess, s.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}
