package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/auth"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/config"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/router"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-idea-studio/pkg/database"
	"github.com/ovaphlow/pitchfork/service-idea-studio/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting idea-studio")

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	repo := userrepo.NewUserRepo(db)
	if err := repo.EnsureTable(ctx); err != nil {
		sugar.Fatalf("ensure users table: %v", err)
	}

	users, err := user.NewUserService(repo, user.BcryptHasher{Cost: cfg.BcryptCost}, sugar)
	if err != nil {
		sugar.Fatalf("user service: %v", err)
	}

	authSvc := auth.NewAuthService(users, auth.Options{
		Secret:       []byte(cfg.AuthSecret),
		TTL:          cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
	})

	// a nil model makes every generation fail with a configuration error
	var model content.TextModel
	if cfg.GeminiAPIKey != "" {
		gm, err := content.NewGeminiModel(ctx, content.GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			APIVersion: cfg.GeminiAPIVersion,
			BaseURL:    cfg.GeminiBaseURL,
		})
		if err != nil {
			sugar.Fatalf("gemini client: %v", err)
		}
		model = gm
	} else {
		sugar.Warn("GEMINI_API_KEY is not set; content generation will fail until it is configured")
	}
	contentSvc := content.NewContentService(model, content.BraceExtractor{}, cfg.GenerateTimeout, sugar)

	handler := router.RegisterRoutes(router.Deps{
		Logger:  sugar,
		Auth:    authSvc,
		Users:   users,
		Content: contentSvc,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
