package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/api/handlers"
	"github.com/bistro-gourmand/ordering-platform/internal/api/middleware"
	"github.com/bistro-gourmand/ordering-platform/internal/cache"
	"github.com/bistro-gourmand/ordering-platform/internal/config"
	"github.com/bistro-gourmand/ordering-platform/internal/health"
	"github.com/bistro-gourmand/ordering-platform/internal/metrics"
	"github.com/bistro-gourmand/ordering-platform/internal/observability"
	repository "github.com/bistro-gourmand/ordering-platform/internal/repositories"
	"github.com/bistro-gourmand/ordering-platform/internal/rules"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/bistro-gourmand/ordering-platform/pkg/clock"
	"github.com/bistro-gourmand/ordering-platform/pkg/mailer"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing
	if cfg.Tracing.Enabled {
		shutdownTracing, err := observability.InitTracerProvider(context.Background(), &cfg.Tracing)
		if err != nil {
			slog.Error("Failed to initialize tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(ctx); err != nil {
				slog.Warn("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	// Shared validator with the restaurant's field rules
	validate := validator.New()
	if err := rules.Register(validate); err != nil {
		slog.Error("Failed to register validation rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartStore := repository.NewCartStore(redisClient, cfg.Session.TTL, cfg.Checkout.PendingTTL)
	menuCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	mailClient := mailer.New(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	clk := clock.New()

	menuService := service.NewMenuService(repos.Menu, menuCache, cfg.Cache.MenuTTL)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartService := service.NewCartService(cartStore, repos.Menu)
	cartHandler := handlers.NewCartHandler(cartService, validate)
	checkoutService := service.NewCheckoutService(cartStore, repos.Orders, mailClient, validate, cfg.Checkout.MinimumOrder)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, validate)
	contactService := service.NewContactService(repos.Contact, mailClient, clk, cfg.Contact.AckDelay)
	contactHandler := handlers.NewContactHandler(contactService, validate)
	sessionMiddleware := middleware.NewSessionMiddleware(&cfg.Session)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Failed to create health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Services initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/menu", menuHandler.ListMenu())
	routerMux.HandleFunc("GET /api/v1/menu/{id}", menuHandler.GetMenuItem())
	routerMux.HandleFunc("GET /api/v1/cart", sessionMiddleware.WithSession(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", sessionMiddleware.WithSession(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", sessionMiddleware.WithSession(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", sessionMiddleware.WithSession(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", sessionMiddleware.WithSession(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", sessionMiddleware.WithSession(checkoutHandler.Checkout()))
	routerMux.HandleFunc("POST /api/v1/checkout/confirm", sessionMiddleware.WithSession(checkoutHandler.Confirm()))
	routerMux.HandleFunc("POST /api/v1/contact", contactHandler.Submit())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "ordering-platform")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}
}
