// File: trimly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/config"
	"trimly/cron"
	"trimly/database"
	appointmentRepo "trimly/database/repository/appointment"
	clientRepo "trimly/database/repository/client"
	ledgerRepo "trimly/database/repository/ledger"
	loyaltyRepo "trimly/database/repository/loyalty"
	professionalRepo "trimly/database/repository/professional"
	referralRepo "trimly/database/repository/referral"
	serviceRepo "trimly/database/repository/service"
	waitlistRepo "trimly/database/repository/waitlist"
	"trimly/handlers"
	"trimly/middleware"
	"trimly/routes"
	"trimly/services/appointment"
	"trimly/services/notification"
	"trimly/services/schedule"
	"trimly/services/tasks"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	cliRepo := clientRepo.NewMongoClientRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	ledRepo := ledgerRepo.NewMongoLedgerRepo()
	loyRepo := loyaltyRepo.NewMongoLoyaltyRepo()
	refRepo := referralRepo.NewMongoReferralRepo()
	waitRepo := waitlistRepo.NewMongoWaitlistRepo()

	// messaging collaborators.
	pushMessenger := notification.NewFCMMessenger(utils.FCMClient, logger)
	smsMessenger := notification.NewSMSGatewayMessenger(
		viper.GetString("SMS_API_KEY"),
		viper.GetString("SMS_SECRET_KEY"),
		viper.GetString("SMS_GATEWAY_URL"),
	)

	// services.
	availabilitySvc := &schedule.DefaultAvailabilityService{
		Professionals: profRepo,
		Appointments:  apptRepo,
		Cache:         utils.GetCacheClient(),
		CacheTTL:      time.Duration(config.AppConfig.SlotCacheTTL) * time.Second,
		Logger:        logger,
	}

	lifecycleSvc := &appointment.DefaultLifecycleService{
		Appointments:      apptRepo,
		Professionals:     profRepo,
		Clients:           cliRepo,
		Services:          svcRepo,
		Ledger:            ledRepo,
		Loyalty:           loyRepo,
		Referrals:         refRepo,
		Waitlist:          waitRepo,
		Messenger:         smsMessenger,
		Slots:             availabilitySvc,
		Logger:            logger,
		SideEffectTimeout: 10 * time.Second,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(availabilitySvc)
	lifecycleHandler := handlers.NewLifecycleHandler(lifecycleSvc, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailableSlotsHandler:   availabilityHandler.GetAvailableSlotsHandler,
		CompleteAppointmentHandler: lifecycleHandler.CompleteAppointmentHandler,
		CancelAppointmentHandler:   lifecycleHandler.CancelAppointmentHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Reminder sweep worker.
	sweeper := &tasks.ReminderSweeper{
		Appointments: apptRepo,
		Clients:      cliRepo,
		Push:         pushMessenger,
		SMS:          smsMessenger,
		AheadWindow:  time.Duration(config.AppConfig.ReminderAheadHours) * time.Hour,
		Logger:       logger,
	}
	cron.InitReminderWorker(sweeper)
	cron.StartSweepScheduler(time.Hour)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
