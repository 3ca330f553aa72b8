package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinspire/internal/ai"
	"pinspire/internal/config"
	"pinspire/internal/database"
	"pinspire/internal/handler"
	"pinspire/internal/middleware"
	"pinspire/internal/pinterest"
	"pinspire/internal/repository"
	"pinspire/internal/router"
	"pinspire/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, int32(cfg.DBMaxConns), int32(cfg.DBMinConns))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	var generator ai.Generator
	if ai.KeyValid(cfg.AIAPIKey) {
		gemini, genErr := ai.NewGeminiGenerator(context.Background(), cfg.AIAPIKey, cfg.AIModel)
		if genErr != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize AI client: %w", genErr)
		}
		generator = gemini
	} else {
		slog.Warn("AI API key missing or placeholder, using mock generator")
		generator = ai.NewMockGenerator()
	}
	aiService := service.NewAIService(generator)
	aiHandler := handler.NewAIHandler(aiService)

	postService := service.NewPostService(postRepo)
	postHandler := handler.NewPostHandler(postService)

	resolver := pinterest.NewResolver(pinterest.Credentials{
		AppID:       cfg.PinterestAppID,
		AppSecret:   cfg.PinterestAppSecret,
		RedirectURI: cfg.PinterestRedirectURI,
	})
	pinterestService := service.NewPinterestService(userRepo, postRepo, resolver)
	pinterestHandler := handler.NewPinterestHandler(pinterestService)

	appRouter := router.New(cfg, authMiddleware, authHandler, aiHandler, postHandler, pinterestHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before releasing the resources they use.
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
