package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alumex/aluminium-shop-platform/internal/api/handlers"
	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	"github.com/alumex/aluminium-shop-platform/internal/cache"
	"github.com/alumex/aluminium-shop-platform/internal/config"
	"github.com/alumex/aluminium-shop-platform/internal/health"
	"github.com/alumex/aluminium-shop-platform/internal/metrics"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	service "github.com/alumex/aluminium-shop-platform/internal/services"
	"github.com/alumex/aluminium-shop-platform/internal/tracing"
	"github.com/alumex/aluminium-shop-platform/pkg/crm"
	"github.com/alumex/aluminium-shop-platform/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), "aluminium-shop-platform", cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	cartStore := cache.NewRedisCache(redisClient, &cfg.CacheConfig)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	crmClient := crm.NewClient(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.CRM.ChatWebhookURL)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(cartStore, repos.Product, cfg.CacheConfig.CartTTL)
	cartHandler := handlers.NewCartHandler(cartService)
	deliveryService := service.NewDeliveryService(&cfg.Delivery)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	notificationService := service.NewNotificationService(repos.Notification, crmClient, sendGridClient, cfg.SendGrid.SalesEmail)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	orderService := service.NewOrderService(repos.Order, cartService, notificationService, &cfg.Delivery)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Public catalogue and storefront routes. The cart is keyed by the
	// X-Cart-Session header, not by an authenticated user.
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts(true))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/carts", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/carts/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/carts/items", cartHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/carts", cartHandler.ClearCart())
	routerMux.HandleFunc("GET /api/v1/delivery/cost", deliveryHandler.Quote())
	routerMux.HandleFunc("POST /api/v1/orders", orderHandler.CreateOrder())
	routerMux.HandleFunc("POST /api/v1/leads", notificationHandler.CreateLead())

	// Back-office routes
	routerMux.HandleFunc("POST /api/v1/admin/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/admin/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("GET /api/v1/admin/products", authMiddleware.Authenticate(productHandler.ListProducts(false)))
	routerMux.HandleFunc("POST /api/v1/admin/products/prices", authMiddleware.Authenticate(productHandler.BulkUpdatePrices()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/admin/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	// Operational endpoints
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
