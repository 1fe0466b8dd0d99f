package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/satvicplanner/satvic-planner-go/internal/config"
	"github.com/satvicplanner/satvic-planner-go/internal/events"
	"github.com/satvicplanner/satvic-planner-go/internal/gemini"
	"github.com/satvicplanner/satvic-planner-go/internal/handler"
	"github.com/satvicplanner/satvic-planner-go/internal/repository"
	"github.com/satvicplanner/satvic-planner-go/internal/service"
)

const (
	version            = "1.0.0"
	indexRetryInterval = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := newLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := repository.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	indexCtx, stopIndexes := context.WithCancel(ctx)
	defer stopIndexes()
	go store.EnsureIndexesWithRetry(indexCtx, indexRetryInterval)
	db := store.Database()

	var gen service.TextGenerator
	if cfg.AIConfigured() {
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.GeminiTimeout,
		})
		if err != nil {
			slog.Error("AI client setup failed", "error", err)
			os.Exit(1)
		}
		gen = client
		slog.Info("AI service configured", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set, AI features disabled")
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		nc, err := events.ConnectNATS(cfg.NATSURL)
		if err != nil {
			slog.Warn("NATS connection failed, events disabled", "error", err)
		} else {
			defer nc.Close()
			pub = nc
		}
	}

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewMealPlanRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	svc := handler.Services{
		Auth:          service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry),
		Profile:       service.NewProfileService(userRepo),
		AI:            service.NewAIService(userRepo, planRepo, recipeRepo, gen, pub),
		Shopping:      service.NewShoppingService(gen, repository.NewShoppingRepository(db)),
		MealPlans:     service.NewMealPlanService(planRepo, pub),
		Recipes:       service.NewRecipeService(recipeRepo),
		Progress:      service.NewProgressService(repository.NewProgressRepository(db), pub),
		Notifications: service.NewNotificationService(repository.NewNotificationRepository(db), pub),
	}

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		Version:         version,
	}, svc, store, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.GeminiTimeout + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		slog.Error("closing database failed", "error", err)
	}

	slog.Info("server stopped")
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
