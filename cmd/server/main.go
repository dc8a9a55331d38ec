package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"choreboard/internal/config"
	"choreboard/internal/database"
	"choreboard/internal/handlers"
	"choreboard/internal/logging"
	"choreboard/internal/metrics"
	"choreboard/internal/repository"
	"choreboard/internal/security"
	"choreboard/internal/service"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("database connection established", "type", cfg.DatabaseType)

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	shoppingRepo := repository.NewShoppingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	if cfg.SeedDemoData {
		if err := repository.SeedDemoData(db); err != nil {
			slog.Warn("failed to seed demo data", "error", err)
		}
	}

	// Services
	tokens := security.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, tokens)
	taskService := service.NewTaskService(taskRepo, userRepo, notifRepo, settingsRepo)
	shoppingService := service.NewShoppingService(shoppingRepo, userRepo, notifRepo)

	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		slog.Error("failed to initialize email service", "error", err)
		os.Exit(1)
	}
	familyService := service.NewFamilyService(userRepo, settingsRepo, emailService)

	// Handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	inboxHandler := handlers.NewInboxHandler(notifRepo)
	scoresHandler := handlers.NewScoresHandler(familyService, taskService)

	mux := http.NewServeMux()

	// Session
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))

	// Tasks
	mux.HandleFunc("GET /api/tasks", middleware.RequireAuth(taskHandler.List))
	mux.HandleFunc("POST /api/tasks", middleware.RequireManager(taskHandler.Create))
	mux.HandleFunc("PUT /api/tasks/rules/{ruleId}", middleware.RequireManager(taskHandler.UpdateRule))
	mux.HandleFunc("DELETE /api/tasks/{id}", middleware.RequireManager(taskHandler.Delete))
	mux.HandleFunc("POST /api/tasks/{id}/complete", middleware.RequireAuth(taskHandler.Complete))
	mux.HandleFunc("POST /api/tasks/{id}/approve", middleware.RequireManager(taskHandler.Approve))
	mux.HandleFunc("POST /api/tasks/{id}/reject", middleware.RequireManager(taskHandler.Reject))

	// Shopping list
	mux.HandleFunc("GET /api/shopping", middleware.RequireAuth(shoppingHandler.List))
	mux.HandleFunc("POST /api/shopping", middleware.RequireAuth(shoppingHandler.Add))
	mux.HandleFunc("POST /api/shopping/{id}/approve", middleware.RequireManager(shoppingHandler.Approve))
	mux.HandleFunc("POST /api/shopping/{id}/reject", middleware.RequireManager(shoppingHandler.Reject))
	mux.HandleFunc("POST /api/shopping/{id}/purchase", middleware.RequireManager(shoppingHandler.Purchase))

	// Family and settings
	mux.HandleFunc("GET /api/family/users", middleware.RequireAuth(familyHandler.ListUsers))
	mux.HandleFunc("POST /api/family/users", middleware.RequireManager(familyHandler.AddUser))
	mux.HandleFunc("PUT /api/family/users/{id}", middleware.RequireManager(familyHandler.UpdateUser))
	mux.HandleFunc("PUT /api/family/users/{id}/avatar", middleware.RequireAuth(familyHandler.UpdateAvatar))
	mux.HandleFunc("DELETE /api/family/users/{id}", middleware.RequireManager(familyHandler.RemoveUser))
	mux.HandleFunc("GET /api/family/settings", middleware.RequireAuth(familyHandler.GetSettings))
	mux.HandleFunc("PUT /api/family/settings", middleware.RequireManager(familyHandler.UpdateSettings))

	// Inbox and scores
	mux.HandleFunc("GET /api/notifications", middleware.RequireManager(inboxHandler.List))
	mux.HandleFunc("POST /api/notifications/{id}/read", middleware.RequireManager(inboxHandler.MarkRead))
	mux.HandleFunc("GET /api/notifications/pending-count", middleware.RequireAuth(inboxHandler.PendingCount))
	mux.HandleFunc("GET /api/scores", middleware.RequireAuth(scoresHandler.Monthly))

	// Observability
	mux.Handle("GET /metrics", metrics.Handler())

	handler := handlers.Logging(metrics.Instrument(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
