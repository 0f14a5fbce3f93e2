package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evgenygerasimov/commerce-api/internal/config"
	"github.com/evgenygerasimov/commerce-api/internal/handlers"
	"github.com/evgenygerasimov/commerce-api/internal/middleware"
	"github.com/evgenygerasimov/commerce-api/internal/repository/sqlite"
	"github.com/evgenygerasimov/commerce-api/internal/service"
	"github.com/evgenygerasimov/commerce-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting commerce api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"db_path", cfg.Database.Path,
		"log_level", cfg.LogLevel,
	)

	// Open the SQLite store
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Repositories share the store's database handle
	customerRepo := store.Customers()
	productRepo := store.Products()
	orderRepo := store.Orders()

	// Services resolve their dependencies here, in a fixed order; the
	// order service talks to the product repository directly, so there
	// is no service-to-service cycle.
	customerService := service.NewCustomerService(customerRepo, orderRepo)
	productService := service.NewProductService(productRepo, orderRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	customerHandler := handlers.NewCustomerHandler(customerService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API keys are optional; without them the API is open
	if len(cfg.Auth.APIKeys) > 0 {
		r.Use(middleware.APIKeyAuth(cfg.Auth))
	}

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.ListCustomers)
		r.Post("/", customerHandler.CreateCustomer)
		r.Post("/from-json", customerHandler.CreateCustomerFromJSON)
		r.Get("/{customerId}", customerHandler.GetCustomer)
		r.Get("/{customerId}/json", customerHandler.GetCustomerJSON)
		r.Delete("/{customerId}", customerHandler.DeleteCustomer)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Post("/from-json", productHandler.CreateProductFromJSON)
		r.Get("/{productId}", productHandler.GetProduct)
		r.Get("/{productId}/json", productHandler.GetProductJSON)
		r.Put("/{productId}", productHandler.UpdateProduct)
		r.Delete("/{productId}", productHandler.DeleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders)
		r.Post("/", orderHandler.CreateOrder)
		r.Post("/from-json", orderHandler.CreateOrderFromJSON)
		r.Get("/{orderId}", orderHandler.GetOrder)
		r.Get("/{orderId}/json", orderHandler.GetOrderJSON)
		r.Delete("/{orderId}", orderHandler.DeleteOrder)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
