// cmd/nyaysetu-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"nyaysetu/internal/auth"
	"nyaysetu/internal/chat"
	"nyaysetu/internal/chat/sources"
	"nyaysetu/internal/common/config"
	"nyaysetu/internal/common/database"
	"nyaysetu/internal/common/logger"
	"nyaysetu/internal/common/observability"
	"nyaysetu/internal/forms"
	"nyaysetu/internal/mailer"
	"nyaysetu/internal/policy"
	"nyaysetu/internal/server"
	"nyaysetu/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting legal gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("nyaysetu-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if err := store.InitSchema(ctx, pg.GetDB()); err != nil {
		zapLog.Fatal("schema initialization failed", zap.Error(err))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Answer chain: Gemini, then the remote legal service, then the
	// canned local advisories. Order is fixed; the first success wins.
	chain := sources.NewChain(log,
		sources.NewGeminiSource(sources.GeminiConfig{
			BaseURL: cfg.APIs.Gemini.BaseURL,
			APIKey:  cfg.APIs.Gemini.APIKey,
			Model:   cfg.APIs.Gemini.Model,
			Timeout: time.Duration(cfg.APIs.Gemini.Timeout) * time.Millisecond,
		}, log),
		sources.NewRemoteLegalSource(sources.RemoteLegalConfig{
			BaseURL: cfg.APIs.LegalAI.BaseURL,
			Timeout: time.Duration(cfg.APIs.LegalAI.Timeout) * time.Millisecond,
		}, log),
		sources.NewFallbackSource(log),
	)

	engine := policy.NewEngine(policy.NewClassifier(), policy.NewLocalizer())

	chatStore := store.NewChatStore(pg.GetDB())
	formStore := store.NewFormStore(pg.GetDB())
	userStore := store.NewUserStore(pg.GetDB())

	chatService := chat.NewService(chain, engine, chatStore, log)

	formValidator, err := forms.NewValidator()
	if err != nil {
		zapLog.Fatal("form validator init failed", zap.Error(err))
	}
	formsService := forms.NewService(forms.NewGenerator(), formValidator, formStore, log)

	// --- Auth wiring ---
	tokens := auth.NewTokenIssuer(
		cfg.Auth.JWT.Secret,
		time.Duration(cfg.Auth.JWT.ExpiryMinutes)*time.Minute,
	)
	states := auth.NewRedisStateStore(
		redis.GetClient(),
		time.Duration(cfg.Auth.OAuth.StateTTLSeconds)*time.Second,
	)

	var verificationMailer auth.VerificationMailer
	if cfg.Mailer.Enabled {
		m, err := mailer.NewSESMailer(ctx, mailer.Config{
			Region:     cfg.Mailer.Region,
			FromEmail:  cfg.Mailer.FromEmail,
			BaseURL:    cfg.App.BaseURL,
			MaxRetries: cfg.Mailer.MaxRetries,
		}, log)
		if err != nil {
			zapLog.Fatal("mailer init failed", zap.Error(err))
		}
		verificationMailer = m
		zapLog.Info("SES mailer initialized")
	} else {
		zapLog.Info("Mailer disabled, accounts verify at registration")
	}

	authService := auth.NewService(userStore, tokens, states, verificationMailer, auth.Config{
		AllowedProviders: cfg.Auth.OAuth.AllowedProviders,
		Environment:      cfg.App.Environment,
	}, log)

	var limiter auth.RateLimiter = auth.NoopRateLimiter{}
	if cfg.Auth.RateLimit.Enabled {
		limiter = auth.NewRedisRateLimiter(
			redis.GetClient(),
			cfg.Auth.RateLimit.MaxPerMinute,
			time.Duration(cfg.Auth.RateLimit.WindowSeconds)*time.Second,
		)
	}

	srv := server.New(cfg, server.Deps{
		Chat:    chatService,
		Forms:   formsService,
		Auth:    authService,
		Tokens:  tokens,
		Limiter: limiter,
		Chats:   chatStore,
		FormLog: formStore,
		Obs:     obs,
		Logger:  log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
		if err := srv.Shutdown(context.Background()); err != nil {
			zapLog.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	zapLog.Info("legal gateway stopped")
}
