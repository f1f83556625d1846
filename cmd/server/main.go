package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolhub/internal/advisory"
	"schoolhub/internal/config"
	"schoolhub/internal/handlers"
	"schoolhub/internal/logger"
	"schoolhub/internal/repository"
	"schoolhub/internal/security"
	"schoolhub/internal/service"
)

const (
	loginAttemptsPerWindow = 10
	loginWindow            = time.Minute
	crashRetention         = time.Hour
	cleanupInterval        = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg := config.Load()

	hostname, _ := os.Hostname()
	appLog := logger.New(log.Default(), logger.Options{
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.AppEnv,
		ServerHost:   hostname,
	})
	defer appLog.Close()

	// Open the state store (memory, bolt, sqlite, postgres or mysql)
	store, closeStore, err := repository.OpenFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer closeStore()

	log.Printf("State store ready (type: %s)", cfg.DatabaseType)

	// Initialize services
	credentials, err := service.NewCredentials(cfg.DemoPassword, cfg.SuspendedEmail)
	if err != nil {
		log.Fatalf("Failed to prepare login credentials: %v", err)
	}

	ctx := context.Background()
	generator := advisory.NewGeneratorFromConfig(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, appLog)
	advisoryClient := advisory.New(generator, appLog)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppEnv != "production")
	if err != nil {
		log.Printf("Warning: announcement email disabled: %v", err)
		emailService = nil
	}

	deps := service.Dependencies{
		Store:       store,
		Advisory:    advisoryClient,
		Credentials: credentials,
		Timings: service.Timings{
			Login:   cfg.LoginDelay,
			Payment: cfg.PaymentDelay,
			Sync:    cfg.SyncDelay,
			Exam:    cfg.ExamDelay,
			Message: cfg.MessageDelay,
			Display: cfg.SuccessDisplay,
		},
		Log: appLog,
	}
	if emailService != nil {
		deps.Email = emailService
	}
	workspaces := service.NewWorkspaceService(deps, cfg.WorkspaceTTL)
	defer workspaces.Close()

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	limiter := security.NewRateLimiter(loginAttemptsPerWindow, loginWindow)
	middleware := handlers.NewMiddleware(csrf, limiter, cfg.WorkspaceTTL)
	recovery := handlers.NewRecoveryHandler(workspaces, csrf, appLog)

	router := handlers.NewRouter(handlers.Handlers{
		App:      handlers.NewAppHandler(workspaces, csrf),
		Auth:     handlers.NewAuthHandler(workspaces),
		Student:  handlers.NewStudentHandler(workspaces),
		Teacher:  handlers.NewTeacherHandler(workspaces),
		Admin:    handlers.NewAdminHandler(workspaces),
		Recovery: recovery,
	}, middleware)

	// Wrap with logging middleware
	handler := handlers.Logging(router)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup of idle workspaces
	stopCleanup := make(chan struct{})
	go cleanup(workspaces, limiter, recovery, stopCleanup)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// cleanup periodically drops idle workspaces, stale rate-limit windows and old crash records
func cleanup(workspaces *service.WorkspaceService, limiter *security.RateLimiter, recovery *handlers.RecoveryHandler, stop <-chan struct{}) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := workspaces.Reap(); n > 0 {
				log.Printf("Reaped %d idle workspaces", n)
			}
			limiter.Prune()
			recovery.Prune(crashRetention)
		}
	}
}
