// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"nyaysetu/internal/auth"
	"nyaysetu/internal/chat"
	"nyaysetu/internal/common/config"
	commonerrors "nyaysetu/internal/common/errors"
	"nyaysetu/internal/common/logger"
	"nyaysetu/internal/common/observability"
	"nyaysetu/internal/forms"
	"nyaysetu/internal/store"
)

// ChatService resolves a legal question into a policy-checked answer.
type ChatService interface {
	ResolveChat(ctx context.Context, question, language string) (*chat.Result, error)
}

// FormsService generates legal form documents.
type FormsService interface {
	Generate(ctx context.Context, formType string, responses map[string]interface{}) (*forms.Result, error)
	GeneratePDF(ctx context.Context, w io.Writer, formType string, responses map[string]interface{}) (*forms.Result, error)
	Fields(formType string) (map[string][]string, error)
}

// AuthService covers account management and session issuance.
type AuthService interface {
	Register(ctx context.Context, input *auth.RegisterInput) (*auth.RegisterOutput, error)
	Login(ctx context.Context, input *auth.LoginInput) (*auth.LoginOutput, error)
	VerifyByToken(ctx context.Context, token string) error
	BeginOAuth(ctx context.Context, provider string) (*auth.OAuthBeginOutput, error)
	CompleteDevOAuth(ctx context.Context, state, email string) (*auth.LoginOutput, error)
}

// TokenVerifier validates bearer tokens on protected routes.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// ChatLister reads back persisted chat records.
type ChatLister interface {
	List(ctx context.Context, filter store.ChatFilter) ([]chat.Record, error)
}

// FormLister reads back persisted form records.
type FormLister interface {
	List(ctx context.Context, filter store.FormFilter) ([]store.FormRecord, error)
}

// Deps bundles everything the HTTP layer depends on.
type Deps struct {
	Chat    ChatService
	Forms   FormsService
	Auth    AuthService
	Tokens  TokenVerifier
	Limiter auth.RateLimiter
	Chats   ChatLister
	FormLog FormLister
	Obs     *observability.Observability
	Logger  logger.Logger
}

// Server is the HTTP front of the legal gateway.
type Server struct {
	config  *config.Config
	chat    ChatService
	forms   FormsService
	auth    AuthService
	tokens  TokenVerifier
	limiter auth.RateLimiter
	chats   ChatLister
	formLog FormLister
	obs     *observability.Observability
	logger  logger.Logger
	errors  *commonerrors.HTTPHandler

	httpServer *http.Server
}

func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		config:  cfg,
		chat:    deps.Chat,
		forms:   deps.Forms,
		auth:    deps.Auth,
		tokens:  deps.Tokens,
		limiter: deps.Limiter,
		chats:   deps.Chats,
		formLog: deps.FormLog,
		obs:     deps.Obs,
		logger:  deps.Logger,
		errors:  commonerrors.NewHTTPHandler(deps.Logger),
	}
	if s.limiter == nil {
		s.limiter = auth.NoopRateLimiter{}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(s.config.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// parseTime accepts RFC 3339 timestamps and bare dates for filter params.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
