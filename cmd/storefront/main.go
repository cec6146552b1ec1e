package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alamlaptops/storefront/internal/api/handlers"
	"github.com/alamlaptops/storefront/internal/api/middleware"
	"github.com/alamlaptops/storefront/internal/cache"
	"github.com/alamlaptops/storefront/internal/cart"
	"github.com/alamlaptops/storefront/internal/config"
	"github.com/alamlaptops/storefront/internal/health"
	"github.com/alamlaptops/storefront/internal/metrics"
	repository "github.com/alamlaptops/storefront/internal/repositories"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/alamlaptops/storefront/internal/storage"
	"github.com/alamlaptops/storefront/pkg/sendgrid"
	"github.com/alamlaptops/storefront/pkg/whatsapp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	// Image blob storage
	imageStore, err := storage.NewDiskStore(cfg.Images.Dir)
	if err != nil {
		slog.Error("❌ Error preparing the image directory", "error", err.Error())
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	cartManager := cart.NewManager(repository.NewCartRepo(redisClient, cfg.Cache.CartTTL), cfg.Cache.CartIdle)
	shippingPolicy := cart.ShippingPolicy{FlatFee: cfg.Shipping.FlatFee, FreeThreshold: cfg.Shipping.FreeThreshold}
	whatsAppClient := whatsapp.NewClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.PhoneNumber)

	// Order notifications stay off unless SendGrid is configured.
	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, repos.Image, imageStore, redisCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(cartManager, repos.Product, shippingPolicy)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, cartManager, shippingPolicy, whatsAppClient, emailService, cfg.SendGrid.OrdersEmail)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewService := service.NewReviewService(repos.Review, repos.Order, redisCache)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	imageService := service.NewImageService(repos.Image, repos.Product, imageStore, cfg.Images.PublicBaseURL)
	imageHandler := handlers.NewImageHandler(imageService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
		ImageStore:  imageStore,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Storefront
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/slug/{slug}", productHandler.GetProductBySlug())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", reviewHandler.ListReviews())
	routerMux.HandleFunc("GET /api/v1/products/{id}/images", imageHandler.ListImages())
	routerMux.HandleFunc("GET /api/v1/carts", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/carts/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/carts/items/{productId}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{productId}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/carts", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/orders/checkout", orderHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/reviews/verify", reviewHandler.VerifyOrder())
	routerMux.HandleFunc("POST /api/v1/reviews", reviewHandler.CreateReview())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())

	// Admin
	routerMux.HandleFunc("POST /api/v1/users/register", authMiddleware.Authenticate(userHandler.Register()))
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/images", authMiddleware.Authenticate(imageHandler.Upload()))
	routerMux.HandleFunc("DELETE /api/v1/images/{id}", authMiddleware.Authenticate(imageHandler.DeleteImage()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("DELETE /api/v1/reviews/{id}", authMiddleware.Authenticate(reviewHandler.DeleteReview()))

	// Uploaded product images are served straight off disk.
	imagePrefix := strings.TrimRight(cfg.Images.PublicBaseURL, "/") + "/"
	routerMux.Handle("GET "+imagePrefix, http.StripPrefix(imagePrefix, http.FileServer(http.Dir(imageStore.Dir()))))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

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

}
