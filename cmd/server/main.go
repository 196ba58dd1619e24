package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/empresta/ledger-engine/internal/config"
	"github.com/empresta/ledger-engine/internal/handler"
	"github.com/empresta/ledger-engine/internal/repository"
	"github.com/empresta/ledger-engine/internal/service"
	"github.com/empresta/ledger-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	signatureRepo := repository.NewSignatureRepository(db)

	// Initialize service and handlers
	ledgerService := service.NewLedgerService(
		clientRepo, loanRepo, installmentRepo,
		notificationRepo, collectionRepo, signatureRepo,
		redisClient, cfg,
	)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(ledgerHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(ledgerHandler *handler.LedgerHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", ledgerHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients", ledgerHandler.ListClients).Methods("GET")
	api.HandleFunc("/clients/{clientId}", ledgerHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{clientId}", ledgerHandler.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{clientId}", ledgerHandler.DeleteClient).Methods("DELETE")
	api.HandleFunc("/clients/{clientId}/report", ledgerHandler.GetClientReport).Methods("GET")

	api.HandleFunc("/loans", ledgerHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans", ledgerHandler.ListLoans).Methods("GET")
	api.HandleFunc("/loans/{loanId}", ledgerHandler.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{loanId}", ledgerHandler.UpdateLoan).Methods("PUT")
	api.HandleFunc("/loans/{loanId}", ledgerHandler.DeleteLoan).Methods("DELETE")
	api.HandleFunc("/loans/{loanId}/payment", ledgerHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/paid", ledgerHandler.MarkLoanPaid).Methods("POST")
	api.HandleFunc("/loans/{loanId}/installments", ledgerHandler.GetInstallments).Methods("GET")
	api.HandleFunc("/loans/{loanId}/installments/{number}/pay", ledgerHandler.PayInstallment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/signature", ledgerHandler.GetSignature).Methods("GET")
	api.HandleFunc("/loans/{loanId}/signature", ledgerHandler.PutSignature).Methods("PUT")
	api.HandleFunc("/loans/{loanId}/collections", ledgerHandler.CreateCollectionMessage).Methods("POST")

	api.HandleFunc("/collections", ledgerHandler.ListCollectionMessages).Methods("GET")

	api.HandleFunc("/notifications", ledgerHandler.ListNotifications).Methods("GET")
	api.HandleFunc("/notifications/{notificationId}/read", ledgerHandler.MarkNotificationRead).Methods("POST")
	api.HandleFunc("/notifications/sweep", ledgerHandler.RunSweep).Methods("POST")

	api.HandleFunc("/dashboard", ledgerHandler.GetDashboard).Methods("GET")

	return router
}
