package cmd

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"ticket-booking/config"
	"ticket-booking/internal/handlers"
	"ticket-booking/internal/services"
	"ticket-booking/internal/services/payment/razorpay"
	"ticket-booking/internal/store"
	_ "ticket-booking/migrations"
	"ticket-booking/monitoring"
	"ticket-booking/security"
	"ticket-booking/utils"
	"ticket-booking/web"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis. Throttling fails open without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := utils.NewRedisClient(cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, request throttling disabled", "error", err)
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	// Initialize the payment provider
	provider := razorpay.New(&razorpay.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpaySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Timeout:   cfg.ProviderTimeout,
	})

	// Initialize PubNub notifications when keys are configured
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}
	notifier := services.NewNotifier(pn, cfg.NotifyChannel)

	// Initialize services
	bookingService := services.NewBookingService(
		store.NewBookingStore(app),
		provider,
		notifier,
		services.BookingConfig{
			UnitPrice:    cfg.TicketUnitPrice,
			Currency:     cfg.Currency,
			OrderReceipt: cfg.OrderReceipt,
		},
	)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(bookingService)
	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		if cfg.EnableMetrics {
			monitoring.NewMonitor(ctx, app)
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Booking endpoints
		e.Router.POST("/api/bookings", limiter.Limit(bookingHandler.Create))
		e.Router.GET("/api/bookings", bookingHandler.List)

		// Payment endpoints
		e.Router.POST("/api/payments", limiter.Limit(paymentHandler.CreateOrder))
		e.Router.POST("/api/payments/confirm", limiter.Limit(paymentHandler.Confirm))

		// Liveness
		e.Router.GET("/api/{$}", func(e *core.RequestEvent) error {
			return e.String(http.StatusOK, "API is running...")
		})

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(http.StatusServiceUnavailable, map[string]string{
						"status": "unhealthy",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		// Checkout frontend
		e.Router.GET("/{path...}", apis.Static(web.Static(), true))

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
