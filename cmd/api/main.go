package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/okarim/tabsplit/docs"
	"github.com/okarim/tabsplit/internal/config"
	"github.com/okarim/tabsplit/internal/database"
	"github.com/okarim/tabsplit/internal/friend"
	"github.com/okarim/tabsplit/internal/receipt"
	"github.com/okarim/tabsplit/internal/scan"
	"github.com/okarim/tabsplit/pkg/logging"
	mw "github.com/okarim/tabsplit/pkg/middleware"
)

// @title        TabSplit API
// @version      1.0
// @description  Receipt management and bill splitting service
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database")

	// Receipt scanning is an external service; we only carry a client.
	scanner := scan.NewClient(cfg.ScanServiceURL)

	// Friend feature
	friendRepo := friend.NewRepository(db)
	friendService := friend.NewService(friendRepo)
	friendHandler := friend.NewHandler(friendService)

	// Receipt feature (friend directory resolves split display names)
	receiptRepo := receipt.NewRepository(db)
	receiptService := receipt.NewService(receiptRepo, friendService, scanner)
	receiptHandler := receipt.NewHandler(receiptService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.UserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/receipts", receiptHandler.Routes())
		r.Mount("/friends", friendHandler.Routes())
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
