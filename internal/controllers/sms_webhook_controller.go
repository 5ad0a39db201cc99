package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/contractor-access-service/internal/config"
	"github.com/poofware/contractor-access-service/internal/constants"
	"github.com/poofware/contractor-access-service/internal/dtos"
	"github.com/poofware/contractor-access-service/internal/routes"
	"github.com/poofware/contractor-access-service/internal/services"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/twilio/twilio-go/client"
	"github.com/twilio/twilio-go/twiml"
)

type SMSWebhookController struct {
	conversationService services.ConversationService
	validate            *validator.Validate

	// nil when signature checking is switched off
	signatureValidator *client.RequestValidator
	webhookURL         string
}

func NewSMSWebhookController(cfg *config.Config, conversationService services.ConversationService) *SMSWebhookController {
	c := &SMSWebhookController{
		conversationService: conversationService,
		validate:            validator.New(),
		webhookURL:          cfg.AppUrl + routes.AccessSMSWebhook,
	}
	if cfg.LDFlag_ValidateTwilioSignature {
		rv := client.NewRequestValidator(cfg.TwilioAuthToken)
		c.signatureValidator = &rv
		utils.Logger.Infof("Twilio signature validation enabled for %s", c.webhookURL)
	}
	return c
}

// WebhookHandler -> POST /api/v1/access/sms/webhook
func (c *SMSWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid form payload", nil, err)
		return
	}

	if c.signatureValidator != nil {
		params := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			params[k] = r.PostForm.Get(k)
		}
		sig := r.Header.Get(constants.TwilioSignatureHeader)
		if sig == "" || !c.signatureValidator.Validate(c.webhookURL, params, sig) {
			utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Invalid Twilio signature", nil)
			return
		}
	}

	req := dtos.InboundSMS{
		From: r.PostForm.Get(constants.TwilioFormFrom),
		Body: r.PostForm.Get(constants.TwilioFormBody),
	}
	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
				"Missing required SMS fields", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return
	}

	logger := utils.Logger.WithField("phone", utils.MaskPhone(req.From))
	logger.Info("Inbound access SMS received")

	reply, err := c.conversationService.Handle(r.Context(), req.From, req.Body)
	if err != nil {
		logger.WithError(err).Error("Conversation handling failed")
		utils.HandleAppError(w, err)
		return
	}

	doc, err := twiml.Messages([]twiml.Element{&twiml.MessagingMessage{Body: reply}})
	if err != nil {
		utils.HandleAppError(w, &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Failed to render reply",
			Err:        err,
		})
		return
	}
	utils.RespondWithXML(w, http.StatusOK, doc)
}

func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	details := make([]dtos.ValidationErrorDetail, 0, len(errs))
	for _, err := range errs {
		message := fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		if err.Tag() == "required" {
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}
