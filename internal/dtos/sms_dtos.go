package dtos

// InboundSMS is the part of Twilio's form payload the service reads.
type InboundSMS struct {
	From string `validate:"required"`
	Body string `validate:"required"`
}
