//go:build (dev_test || staging_test) && integration

package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/poofware/contractor-access-service/internal/app"
	"github.com/poofware/contractor-access-service/internal/config"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
	_ "time/tzdata"
)

var (
	cfg         *config.Config
	application *app.App
	baseURL     string

	convRepo     repositories.ConversationRepository
	msgRepo      repositories.ConversationMessageRepository
	buildingRepo repositories.BuildingRepository
	unitRepo     repositories.ValidUnitRepository
	pinRepo      repositories.ActivePinRepository
)

// TestMain connects to the same database as the running service and
// makes sure the seed buildings exist.
func TestMain(m *testing.M) {
	utils.InitLogger(config.AppName)

	if config.AppName == "" {
		log.Fatal("config.AppName is empty or not set (ldflags missing?)")
	}

	cfg = config.LoadConfig()
	baseURL = cfg.AppUrl

	var err error
	application, err = app.NewApp(cfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}

	convRepo = repositories.NewConversationRepository(application.DB)
	msgRepo = repositories.NewConversationMessageRepository(application.DB)
	buildingRepo = repositories.NewBuildingRepository(application.DB)
	unitRepo = repositories.NewValidUnitRepository(application.DB)
	pinRepo = repositories.NewActivePinRepository(application.DB)

	ctx := context.Background()
	if err := app.SeedAllTestData(ctx, buildingRepo, unitRepo, pinRepo, cfg.PropertyLocation, utils.SystemClock); err != nil {
		log.Fatalf("seed: %v", err)
	}

	log.Printf("contractor-access-service integration tests: baseURL=%s, env=%s", baseURL, os.Getenv("ENV"))
	time.Sleep(100 * time.Millisecond)

	code := m.Run()
	application.Close()
	os.Exit(code)
}
