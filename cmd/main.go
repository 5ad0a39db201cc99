package main

import (
	"context"
	"net/http"

	"github.com/poofware/contractor-access-service/internal/app"
	"github.com/poofware/contractor-access-service/internal/config"
	"github.com/poofware/contractor-access-service/internal/constants"
	"github.com/poofware/contractor-access-service/internal/controllers"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/services"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/robfig/cron/v3"
	_ "time/tzdata"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize contractor-access-service:", err)
	}
	defer application.Close()

	clock := utils.Clock(utils.SystemClock)

	// Repositories
	convRepo := repositories.NewConversationRepository(application.DB)
	msgRepo := repositories.NewConversationMessageRepository(application.DB)
	buildingRepo := repositories.NewBuildingRepository(application.DB)
	unitRepo := repositories.NewValidUnitRepository(application.DB)
	pinRepo := repositories.NewActivePinRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(context.Background(), buildingRepo, unitRepo, pinRepo, cfg.PropertyLocation, clock); err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	// Services
	window := utils.ServiceWindow{
		Location:        cfg.PropertyLocation,
		ObserveHolidays: cfg.LDFlag_ObserveFederalHolidays,
	}

	var notifier services.AccessNotifier
	if cfg.LDFlag_ManagementPhone == "" && cfg.LDFlag_ManagementEmail == "" {
		utils.Logger.Info("No management contacts configured; access notifications disabled")
		notifier = services.NewNoopNotifier()
	} else {
		notifier = services.NewAccessNotifier(cfg)
	}

	directoryService := services.NewDirectoryService(unitRepo, buildingRepo)
	pinService := services.NewPinService(pinRepo, window)
	conversationService := services.NewConversationService(
		convRepo,
		services.NewMessageLog(msgRepo, clock),
		directoryService,
		pinService,
		window,
		notifier,
		clock,
		cfg.EmergencyContact,
	)

	// Controllers
	healthController := controllers.NewHealthController(application)
	smsWebhookController := controllers.NewSMSWebhookController(cfg, conversationService)

	// PIN coverage audit, scheduled in the property's zone
	if cfg.LDFlag_PinCoverageAudit {
		coverageService := services.NewPinCoverageService(buildingRepo, pinService, notifier, clock)

		c := cron.New(cron.WithLocation(cfg.PropertyLocation))
		_, err = c.AddFunc(constants.PinCoverageAuditCronSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.PinCoverageAuditTimeout)
			defer cancel()
			utils.Logger.Info("Starting PIN coverage audit cron job...")
			if _, err := coverageService.Audit(ctx); err != nil {
				utils.Logger.WithError(err).Error("PIN coverage audit failed")
			}
		})
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to schedule PIN coverage audit cron")
		}
		c.Start()
		defer c.Stop()
		utils.Logger.Infof("Scheduled PIN coverage audit (%s)", constants.PinCoverageAuditCronSpec)
	}

	handler := app.NewHTTPHandler(healthController.HealthCheckHandler, smsWebhookController.WebhookHandler)

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		utils.Logger.Fatal("contractor-access-service failed to start:", err)
	}
}
