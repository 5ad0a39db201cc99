package utils

const (
	OrganizationName = "Poof"

	TestPhoneNumberBase = "+999"

	// Shown in after-hours replies until a real on-call line is configured.
	EmergencyContactPlaceholder = "[EMERGENCY CONTACT]"
)
