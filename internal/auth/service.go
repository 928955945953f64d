// internal/auth/service.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	commonerrors "nyaysetu/internal/common/errors"
	"nyaysetu/internal/store"
)

var (
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrNotVerified        = errors.New("ACCOUNT_NOT_VERIFIED")
	ErrProviderUnknown    = errors.New("OAUTH_PROVIDER_UNKNOWN")
)

// Logger is the minimal logging surface the auth service needs.
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Users is the persistence surface for accounts.
type Users interface {
	Create(ctx context.Context, email, passwordHash, verificationToken string, createdAt time.Time) (int64, error)
	GetByEmail(ctx context.Context, email string) (*store.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*store.User, error)
	SetVerified(ctx context.Context, userID int64, verifiedAt time.Time) error
}

// VerificationMailer sends the account-verification email. A nil mailer means
// accounts are verified at registration time.
type VerificationMailer interface {
	SendVerification(ctx context.Context, to, token string) error
}

type Config struct {
	AllowedProviders []string
	Environment      string
}

// Service implements registration, login, verification and the dev OAuth flow.
type Service struct {
	users  Users
	tokens *TokenIssuer
	states StateStore
	mailer VerificationMailer
	config Config
	logger Logger
	now    func() time.Time
}

func NewService(users Users, tokens *TokenIssuer, states StateStore, mailer VerificationMailer, config Config, logger Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		states: states,
		mailer: mailer,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterOutput struct {
	UserID   int64 `json:"user_id"`
	Verified bool  `json:"verified"`
}

// Register creates an account. When no mailer is configured the account is
// verified immediately, otherwise a verification token is emailed.
func (s *Service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, commonerrors.NewValidationError("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, commonerrors.NewValidationError("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, fmt.Sprintf("lookup user: %v", err))
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, commonerrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	token := ""
	if s.mailer != nil {
		token, err = randomToken()
		if err != nil {
			return nil, commonerrors.NewInternalError(fmt.Errorf("generate verification token: %w", err))
		}
	}

	now := s.now().UTC()
	userID, err := s.users.Create(ctx, email, hash, token, now)
	if err != nil {
		return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeDatabaseInsertFailed, fmt.Sprintf("create user: %v", err))
	}

	verified := false
	if s.mailer == nil {
		// No mail transport configured, so accounts verify at registration.
		if err := s.users.SetVerified(ctx, userID, now); err != nil {
			return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeDatabaseInsertFailed, fmt.Sprintf("mark user verified: %v", err))
		}
		verified = true
	} else if err := s.mailer.SendVerification(ctx, email, token); err != nil {
		// Registration stands even when the email fails. The user can
		// request a resend through support.
		s.logger.Error("verification email failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	s.logger.Info("user registered", map[string]interface{}{
		"user_id":  userID,
		"verified": verified,
	})

	return &RegisterOutput{UserID: userID, Verified: verified}, nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, fmt.Sprintf("lookup user: %v", err))
	}

	if err := CheckPassword(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, commonerrors.NewInternalError(fmt.Errorf("issue token: %w", err))
	}

	return &LoginOutput{Token: token, Email: user.Email}, nil
}

// VerifyByToken marks the account holding the verification token as verified.
func (s *Service) VerifyByToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return commonerrors.NewValidationError("verification token is required")
	}

	user, err := s.users.GetByVerificationToken(ctx, token)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, fmt.Sprintf("lookup verification token: %v", err))
	}

	if err := s.users.SetVerified(ctx, user.ID, s.now().UTC()); err != nil {
		return commonerrors.NewDatabaseError(commonerrors.ErrCodeDatabaseInsertFailed, fmt.Sprintf("mark user verified: %v", err))
	}

	s.logger.Info("user verified", map[string]interface{}{"user_id": user.ID})
	return nil
}

type OAuthBeginOutput struct {
	State    string `json:"state"`
	Provider string `json:"provider"`
}

// BeginOAuth issues a one-time state token for the provider.
func (s *Service) BeginOAuth(ctx context.Context, provider string) (*OAuthBeginOutput, error) {
	if !s.providerAllowed(provider) {
		return nil, ErrProviderUnknown
	}

	state, err := randomToken()
	if err != nil {
		return nil, commonerrors.NewInternalError(fmt.Errorf("generate oauth state: %w", err))
	}
	if err := s.states.Put(ctx, state, provider); err != nil {
		return nil, commonerrors.NewInternalError(fmt.Errorf("store oauth state: %w", err))
	}

	return &OAuthBeginOutput{State: state, Provider: provider}, nil
}

// CompleteDevOAuth consumes a state token and issues a session for the given
// email without a provider round trip. Only available outside production.
func (s *Service) CompleteDevOAuth(ctx context.Context, state, email string) (*LoginOutput, error) {
	if strings.EqualFold(s.config.Environment, "production") {
		return nil, commonerrors.NewUnauthorizedError("dev oauth is disabled in production")
	}

	provider, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, ErrStateUnknown
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, commonerrors.NewValidationError("a valid email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		now := s.now().UTC()
		userID, createErr := s.users.Create(ctx, email, "", "", now)
		if createErr == nil {
			createErr = s.users.SetVerified(ctx, userID, now)
		}
		if createErr != nil {
			return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeDatabaseInsertFailed, fmt.Sprintf("oauth user: %v", createErr))
		}
		user = &store.User{ID: userID, Email: email, IsVerified: true}
	} else if err != nil {
		return nil, commonerrors.NewDatabaseError(commonerrors.ErrCodeQueryExecutionFailed, fmt.Sprintf("oauth user: %v", err))
	}

	s.logger.Info("dev oauth login", map[string]interface{}{
		"user_id":  user.ID,
		"provider": provider,
	})

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, commonerrors.NewInternalError(fmt.Errorf("issue token: %w", err))
	}
	return &LoginOutput{Token: token, Email: user.Email}, nil
}

func (s *Service) providerAllowed(provider string) bool {
	for _, allowed := range s.config.AllowedProviders {
		if strings.EqualFold(allowed, provider) {
			return true
		}
	}
	return false
}

func randomToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
