package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poofware/contractor-access-service/internal/config"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// AccessNotifier tells property management about access events. Every
// method is best-effort: failures are logged and swallowed because the
// event they describe has already been committed.
type AccessNotifier interface {
	PinDelivered(ctx context.Context, conv *models.Conversation, bldg *models.Building)
	PinCoverageGaps(ctx context.Context, buildings []*models.Building, asOf time.Time)
}

type accessNotifier struct {
	cfg            *config.Config
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
}

func NewAccessNotifier(cfg *config.Config) AccessNotifier {
	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendgridAPIKey)

	return &accessNotifier{
		cfg:            cfg,
		twilioClient:   twClient,
		sendgridClient: sgClient,
	}
}

func (n *accessNotifier) PinDelivered(ctx context.Context, conv *models.Conversation, bldg *models.Building) {
	if !n.cfg.LDFlag_NotifyManagementOnPinDelivery {
		return
	}

	subject, body := pinDeliveredMessage(conv, bldg, n.cfg.PropertyLocation)
	log := utils.Logger.WithFields(logrus.Fields{
		"conversation_id": conv.ID,
		"building":        bldg.Code,
	})
	if err := n.sendSMS(ctx, subject+" :: "+body); err != nil {
		log.WithError(err).Warn("Management SMS notification failed")
	}
	if err := n.sendEmail(ctx, subject, body); err != nil {
		log.WithError(err).Warn("Management email notification failed")
	}
}

func (n *accessNotifier) PinCoverageGaps(ctx context.Context, buildings []*models.Building, asOf time.Time) {
	if len(buildings) == 0 {
		return
	}
	if n.cfg.PropertyLocation != nil {
		asOf = asOf.In(n.cfg.PropertyLocation)
	}
	subject, body := coverageGapMessage(buildings, asOf)
	if err := n.sendEmail(ctx, subject, body); err != nil {
		utils.Logger.WithError(err).WithField("job", "pin_coverage_audit").Warn("Coverage gap email failed")
	}
}

// pinDeliveredMessage never includes the PIN itself.
func pinDeliveredMessage(conv *models.Conversation, bldg *models.Building, loc *time.Location) (subject, body string) {
	if loc == nil {
		loc = time.UTC
	}
	deliveredAt := utils.Val(conv.PinDeliveredAt).In(loc)
	subject = fmt.Sprintf("Access code sent: %s unit %s", bldg.Name, utils.Val(conv.UnitCode))
	body = fmt.Sprintf(
		"%s (%s) received the access code for %s, unit %s (%s side) at %s.",
		conv.CompanyName,
		conv.PhoneNumber,
		bldg.Name,
		utils.Val(conv.UnitCode),
		utils.DisplaySide(utils.Val(conv.Side)),
		deliveredAt.Format("Mon Jan 2 3:04 PM MST"),
	)
	return subject, body
}

func coverageGapMessage(buildings []*models.Building, asOf time.Time) (subject, body string) {
	names := make([]string, 0, len(buildings))
	for _, b := range buildings {
		names = append(names, fmt.Sprintf("%s (%s)", b.Name, b.Code))
	}
	subject = fmt.Sprintf("%d building(s) have no active access code", len(buildings))
	body = fmt.Sprintf(
		"As of %s the following buildings have no live lockbox PIN, so contractors will be turned away:\n- %s",
		asOf.Format("Mon Jan 2 2006"),
		strings.Join(names, "\n- "),
	)
	return subject, body
}

// sendSMS is a no-op when no management phone is configured.
func (n *accessNotifier) sendSMS(ctx context.Context, body string) error {
	if n.cfg.LDFlag_ManagementPhone == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: twilio: %v", utils.ErrExternalServiceFailure, err)
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.cfg.LDFlag_ManagementPhone)
	params.SetFrom(n.cfg.LDFlag_TwilioFromPhone)
	params.SetBody(body)
	if _, err := n.twilioClient.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: twilio: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

// sendEmail is a no-op when no management email is configured.
func (n *accessNotifier) sendEmail(ctx context.Context, subject, body string) error {
	if n.cfg.LDFlag_ManagementEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	from := mail.NewEmail(n.cfg.OrganizationName+" Access-Bot", n.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail("Property Management", n.cfg.LDFlag_ManagementEmail)
	htmlBody := "<p>" + strings.ReplaceAll(body, "\n", "<br>") + "</p>"

	msg := mail.NewSingleEmail(from, "[Access] "+subject, to, body, htmlBody)
	if n.cfg.LDFlag_SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	resp, err := n.sendgridClient.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
	}
	return nil
}

// noopNotifier is used when notifications are disabled outright.
type noopNotifier struct{}

func NewNoopNotifier() AccessNotifier { return noopNotifier{} }

func (noopNotifier) PinDelivered(context.Context, *models.Conversation, *models.Building) {}
func (noopNotifier) PinCoverageGaps(context.Context, []*models.Building, time.Time)       {}
