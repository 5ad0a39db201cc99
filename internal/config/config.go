package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bradfitz/latlong"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/poofware/contractor-access-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	DBUrl            string
	UniqueRunNumber  string
	UniqueRunnerID   string

	// Twilio / SendGrid
	TwilioAccountSID string
	TwilioAuthToken  string
	SendgridAPIKey   string

	// Property
	PropertyLocation *time.Location
	EmergencyContact string

	// Feature-flag snapshots
	LDFlag_UsingIsolatedSchema           bool
	LDFlag_SeedDbWithTestData            bool
	LDFlag_ValidateTwilioSignature       bool
	LDFlag_ObserveFederalHolidays        bool
	LDFlag_NotifyManagementOnPinDelivery bool
	LDFlag_PinCoverageAudit              bool
	LDFlag_SendgridSandboxMode           bool
	LDFlag_TwilioFromPhone               string
	LDFlag_SendgridFromEmail             string
	LDFlag_ManagementPhone               string
	LDFlag_ManagementEmail               string
}

const (
	OrganizationName        = utils.OrganizationName
	LDConnectionTimeout     = 5 * time.Second
	DefaultPropertyTimezone = "America/New_York"
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  string
	LDServerContextKind string
)

func LoadConfig() *Config {
	//----------------------------------------------------------------------
	// 1) Validate required ldflags
	//----------------------------------------------------------------------
	if AppName == "" {
		utils.Logger.Fatal("AppName was not provided via ldflags")
	}
	if UniqueRunNumber == "" {
		utils.Logger.Fatal("UniqueRunNumber was not provided via ldflags")
	}
	if UniqueRunnerID == "" {
		utils.Logger.Fatal("UniqueRunnerID was not provided via ldflags")
	}
	if LDServerContextKey == "" || LDServerContextKind == "" {
		utils.Logger.Fatal("LD context ldflags missing")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	//----------------------------------------------------------------------
	// 2) Runtime environment vars
	//----------------------------------------------------------------------
	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}

	loc, tzSource := ResolvePropertyLocation(
		os.Getenv("PROPERTY_TIMEZONE"),
		os.Getenv("PROPERTY_LATITUDE"),
		os.Getenv("PROPERTY_LONGITUDE"),
	)
	utils.Logger.Infof("Property time zone %s (from %s)", loc, tzSource)

	emergencyContact := os.Getenv("EMERGENCY_CONTACT_PHONE")
	if emergencyContact == "" {
		utils.Logger.Warn("EMERGENCY_CONTACT_PHONE not set, after-hours replies will show a placeholder")
		emergencyContact = utils.EmergencyContactPlaceholder
	}

	//----------------------------------------------------------------------
	// 3) BWS secrets
	//----------------------------------------------------------------------
	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize BWSSecretsClient")
	}
	defer client.Close()

	appSecretsName := fmt.Sprintf("%s-%s", AppName, env)
	appSecrets, err := client.GetBWSSecrets(appSecretsName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch app secrets from BWS")
	}

	sharedSecretsName := fmt.Sprintf("shared-%s", env)
	sharedSecrets, err := client.GetBWSSecrets(sharedSecretsName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to fetch shared secrets from BWS")
	}

	dbURL, ok := appSecrets["DB_URL"]
	if !ok || dbURL == "" {
		utils.Logger.Fatalf("DB_URL not found in BWS secrets (%s)", appSecretsName)
	}
	ldSDKKey, ok := appSecrets["LD_SDK_KEY"]
	if !ok || ldSDKKey == "" {
		utils.Logger.Fatalf("LD_SDK_KEY not found in BWS secrets (%s)", appSecretsName)
	}

	twilioSID, ok := sharedSecrets["TWILIO_ACCOUNT_SID"]
	if !ok || twilioSID == "" {
		utils.Logger.Fatal("TWILIO_ACCOUNT_SID missing in shared secrets")
	}
	twilioToken, ok := sharedSecrets["TWILIO_AUTH_TOKEN"]
	if !ok || twilioToken == "" {
		utils.Logger.Fatal("TWILIO_AUTH_TOKEN missing in shared secrets")
	}
	sgAPIKey, ok := sharedSecrets["SENDGRID_API_KEY"]
	if !ok || sgAPIKey == "" {
		utils.Logger.Fatal("SENDGRID_API_KEY missing in shared secrets")
	}

	//----------------------------------------------------------------------
	// 4) LaunchDarkly client & flags
	//----------------------------------------------------------------------
	ldClient, err := ld.MakeClient(ldSDKKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(key string) bool {
		v, err := ldClient.BoolVariation(key, ctx, false)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %t", key, v)
		return v
	}
	stringFlag := func(key, fallback string) string {
		v, err := ldClient.StringVariation(key, ctx, "")
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %s", key, v)
		if v == "" && fallback != "" {
			utils.Logger.Warnf("%s flag is empty, defaulting to %s", key, fallback)
			v = fallback
		}
		return v
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		AppPort:          appPort,
		AppUrl:           appURL,
		DBUrl:            dbURL,
		UniqueRunNumber:  UniqueRunNumber,
		UniqueRunnerID:   UniqueRunnerID,
		TwilioAccountSID: twilioSID,
		TwilioAuthToken:  twilioToken,
		SendgridAPIKey:   sgAPIKey,
		PropertyLocation: loc,
		EmergencyContact: emergencyContact,

		LDFlag_UsingIsolatedSchema:           boolFlag("using_isolated_schema"),
		LDFlag_SeedDbWithTestData:            boolFlag("seed_db_with_test_data"),
		LDFlag_ValidateTwilioSignature:       boolFlag("validate_twilio_signature"),
		LDFlag_ObserveFederalHolidays:        boolFlag("observe_federal_holidays"),
		LDFlag_NotifyManagementOnPinDelivery: boolFlag("notify_management_on_pin_delivery"),
		LDFlag_PinCoverageAudit:              boolFlag("pin_coverage_audit"),
		LDFlag_SendgridSandboxMode:           boolFlag("sendgrid_sandbox_mode"),
		LDFlag_TwilioFromPhone:               stringFlag("twilio_from_phone", "+10005550006"),
		LDFlag_SendgridFromEmail:             stringFlag("sendgrid_from_email", "no-reply@thepoofapp.com"),
		LDFlag_ManagementPhone:               stringFlag("management_phone", ""),
		LDFlag_ManagementEmail:               stringFlag("management_email", ""),
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)
	return cfg
}

// ResolvePropertyLocation picks the property's zone: an explicit IANA name
// wins, then coordinates, then DefaultPropertyTimezone. The second return
// names which source was used.
func ResolvePropertyLocation(tzName, latStr, lngStr string) (*time.Location, string) {
	if tzName != "" {
		if loc, err := time.LoadLocation(tzName); err == nil {
			return loc, "PROPERTY_TIMEZONE"
		}
		utils.Logger.Warnf("Invalid PROPERTY_TIMEZONE %q, ignoring", tzName)
	}

	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr == nil && lngErr == nil {
			if name := latlong.LookupZoneName(lat, lng); name != "" {
				if loc, err := time.LoadLocation(name); err == nil {
					return loc, "coordinates"
				}
			}
		}
		utils.Logger.Warnf("Could not derive a time zone from %s,%s", latStr, lngStr)
	}

	loc, err := time.LoadLocation(DefaultPropertyTimezone)
	if err != nil {
		return time.UTC, "fallback"
	}
	return loc, "default"
}

// Close drops secrets held in memory.
func (c *Config) Close() {
	c.DBUrl = ""
	c.TwilioAuthToken = ""
	c.SendgridAPIKey = ""
}
