package constants

import "time"

// Twilio webhook
const (
	TwilioSignatureHeader = "X-Twilio-Signature"
	TwilioFormFrom        = "From"
	TwilioFormBody        = "Body"
)

// PIN coverage audit, evaluated in the property's time zone.
const (
	PinCoverageAuditCronSpec = "0 7 * * 1-5"
	PinCoverageAuditTimeout  = 2 * time.Minute
)

// Worked example shown whenever we ask for a unit and side.
const UnitSideExample = "B2G South"

// Upper bound for one best-effort management notification.
const ManagementNotifyTimeout = 10 * time.Second
