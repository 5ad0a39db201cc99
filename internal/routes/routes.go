package routes

const (
	// Health
	Health = "/health"

	// Twilio inbound SMS webhook
	AccessSMSWebhook = "/api/v1/access/sms/webhook"
)
