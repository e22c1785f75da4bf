package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"facility-booking/config"
	"facility-booking/internal/handlers"
	"facility-booking/internal/services"
	"facility-booking/internal/services/slipcheck"
	"facility-booking/monitoring"
	"facility-booking/security"
	"facility-booking/utils"

	_ "facility-booking/migrations"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	pubnub "github.com/pubnub/go"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slipClient, err := slipcheck.New(ctx, cfg.SlipCheck)
	if err != nil {
		return err
	}

	if slipClient.Enabled() {
		go func() {
			confirmations := make(chan *slipcheck.Confirmation, 1)
			slipClient.SetConfirmationChannel(confirmations)
			for {
				select {
				case conf := <-confirmations:
					slog.Info("slip confirmation received", "reference", conf.Reference, "status", conf.Status)

				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Initialize services
	notifier := services.NewNotifier(pn)
	adminLog := services.NewAdminLogService(app)
	availability := services.NewAvailabilityService(app, redisClient, notifier, adminLog, cfg)
	pricing := services.NewPricingService(app, cfg)
	reservations := services.NewReservationService(app, pricing, notifier, slipClient, cfg)
	payments := services.NewPaymentService(app, notifier, adminLog)
	catalog := services.NewCatalogService(app)

	// Initialize handlers
	reservationHandler := handlers.NewReservationHandler(app, reservations, availability, cfg)
	adminHandler := handlers.NewAdminHandler(app, availability, payments, adminLog)
	catalogHandler := handlers.NewCatalogHandler(catalog)
	webhookHandler := handlers.NewWebhookHandler(app, slipClient)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start metrics server
	if cfg.EnableMetrics {
		monitoring.StartMetricsServer(cfg.MetricsPort)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Reservation endpoints
		e.Router.POST("/api/reservations", reservationHandler.Create).
			BindFunc(rateLimiter.ReservationRateLimit())
		e.Router.GET("/api/reservations", reservationHandler.History)
		e.Router.POST("/api/reservations/{id}/cancel", reservationHandler.Cancel)

		// Catalog endpoints
		e.Router.GET("/api/facilities", catalogHandler.Facilities)
		e.Router.GET("/api/facilities/{id}/courts", catalogHandler.Courts)
		e.Router.GET("/api/time-slots", catalogHandler.TimeSlots)

		// Admin endpoints
		e.Router.GET("/api/admin/booking-system", adminHandler.GetBookingSystem)
		e.Router.POST("/api/admin/booking-system", adminHandler.SetBookingSystem)
		e.Router.POST("/api/admin/payments/{id}/approve", adminHandler.ApprovePayment)
		e.Router.POST("/api/admin/payments/{id}/reject", adminHandler.RejectPayment)
		e.Router.GET("/api/admin/logs", adminHandler.ListLogs)

		// Provider callbacks
		e.Router.POST("/api/webhooks/slipcheck", webhookHandler.SlipConfirmation)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

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
