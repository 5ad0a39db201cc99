package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/constants"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/sirupsen/logrus"
)

// ConversationService runs the contractor access dialogue for inbound SMS.
type ConversationService interface {
	// Handle processes one inbound message and returns the reply text.
	// A non-nil error means persistence failed and the reply must not be sent.
	Handle(ctx context.Context, phone, text string) (string, error)
}

// phase is the dispatcher's view of a conversation. phaseNone stands for
// "no live row" so that absence is a case in the switch, not a nil check.
type phase int

const (
	phaseNone phase = iota
	phaseAwaitingInfo
	phaseConfirming
	phaseUnexpected
)

func phaseOf(conv *models.Conversation) phase {
	if conv == nil {
		return phaseNone
	}
	switch conv.State {
	case models.ConversationStateAwaitingInfo, models.ConversationStateInitial:
		return phaseAwaitingInfo
	case models.ConversationStateConfirming:
		return phaseConfirming
	default:
		return phaseUnexpected
	}
}

type conversationService struct {
	convRepo  repositories.ConversationRepository
	messages  *MessageLog
	directory DirectoryService
	pins      PinService
	window    utils.ServiceWindow
	notifier  AccessNotifier
	clock     utils.Clock
	locks     *utils.KeyedMutex

	emergencyContact string
}

func NewConversationService(
	convRepo repositories.ConversationRepository,
	messages *MessageLog,
	directory DirectoryService,
	pins PinService,
	window utils.ServiceWindow,
	notifier AccessNotifier,
	clock utils.Clock,
	emergencyContact string,
) ConversationService {
	if emergencyContact == "" {
		emergencyContact = utils.EmergencyContactPlaceholder
	}
	return &conversationService{
		convRepo:         convRepo,
		messages:         messages,
		directory:        directory,
		pins:             pins,
		window:           window,
		notifier:         notifier,
		clock:            clock,
		locks:            utils.NewKeyedMutex(),
		emergencyContact: emergencyContact,
	}
}

func (s *conversationService) Handle(ctx context.Context, phone, text string) (string, error) {
	unlock := s.locks.Lock(phone)
	defer unlock()

	conv, err := s.convRepo.FindActiveByPhone(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("load active conversation: %w", err)
	}

	log := utils.Logger.WithField("phone", utils.MaskPhone(phone))
	if conv != nil {
		log = log.WithFields(logrus.Fields{"conversation_id": conv.ID, "state": conv.State})
	}

	switch phaseOf(conv) {
	case phaseNone:
		return s.handleNew(ctx, log, phone, text)
	case phaseAwaitingInfo:
		return s.handleAwaitingInfo(ctx, log, conv, text)
	case phaseConfirming:
		return s.handleConfirming(ctx, log, conv, text)
	default:
		log.Warn("Conversation in unexpected state, asking contractor to start over")
		return replyUnexpectedState, nil
	}
}

// handleNew validates the opening message. Rejected spam leaves no trace
// in the database.
func (s *conversationService) handleNew(ctx context.Context, log *logrus.Entry, phone, text string) (string, error) {
	company := strings.TrimSpace(text)
	if !utils.IsLegitimateCompanyName(company) {
		log.Info("Rejected opening message as company name")
		return replyInvalidCompany, nil
	}

	now := s.clock()
	conv := &models.Conversation{
		ID:          uuid.New(),
		PhoneNumber: phone,
		CompanyName: company,
		State:       models.ConversationStateAwaitingInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return "", fmt.Errorf("create conversation: %w", err)
	}
	log.WithField("conversation_id", conv.ID).Info("Started contractor access conversation")

	return s.reply(ctx, conv, text, replyAskUnitAndSide(company))
}

func (s *conversationService) handleAwaitingInfo(ctx context.Context, log *logrus.Entry, conv *models.Conversation, text string) (string, error) {
	extracted := utils.ExtractUnitAndSide(text)
	if !extracted.Complete() {
		return s.reply(ctx, conv, text, replyNeedUnitAndSide)
	}

	bldg, err := s.directory.ResolveUnit(ctx, extracted.Unit, extracted.Side)
	switch {
	case errors.Is(err, utils.ErrUnitUnknown):
		log.Infof("Unit %s not in registry", extracted.Unit)
		return s.reply(ctx, conv, text, replyUnitUnknown(extracted.Unit))
	case errors.Is(err, utils.ErrBuildingNotMapped):
		return s.reply(ctx, conv, text, replyBuildingNotMapped(extracted.Unit))
	case err != nil:
		return "", err
	}

	conv.BuildingID = &bldg.ID
	conv.UnitCode = &extracted.Unit
	conv.Side = &extracted.Side
	conv.State = models.ConversationStateConfirming
	if err := s.save(ctx, conv); err != nil {
		return "", err
	}
	log.Infof("Resolved unit %s to building %s, awaiting confirmation", extracted.Unit, bldg.Code)

	return s.reply(ctx, conv, text, replyConfirm(conv.CompanyName, bldg, extracted.Unit, extracted.Side))
}

func (s *conversationService) handleConfirming(ctx context.Context, log *logrus.Entry, conv *models.Conversation, text string) (string, error) {
	if !isAffirmative(text) {
		conv.ClearResolution()
		conv.State = models.ConversationStateAwaitingInfo
		if err := s.save(ctx, conv); err != nil {
			return "", err
		}
		log.Info("Contractor declined confirmation, restarting unit selection")
		return s.reply(ctx, conv, text, replyStartOver())
	}

	now := s.clock()
	if status := s.window.Evaluate(now); status != utils.WindowOpen {
		log.Infof("PIN request outside service window (%s)", status)
		return s.reply(ctx, conv, text, replyWindowClosed(status, s.emergencyContact))
	}

	if conv.BuildingID == nil || conv.UnitCode == nil {
		log.Warn("Confirming conversation has no resolved building")
		return s.reply(ctx, conv, text, replyUnexpectedState)
	}

	pin, err := s.pins.CurrentPin(ctx, *conv.BuildingID, now)
	if err != nil {
		return "", err
	}
	bldg, err := s.directory.GetBuilding(ctx, *conv.BuildingID)
	if err != nil {
		return "", err
	}
	if pin == nil || bldg == nil {
		log.Warn("No active PIN for building")
		return s.reply(ctx, conv, text, replyNoActivePin(bldg))
	}

	// Delivery and completion are one write so no reader ever sees a
	// PIN_DELIVERED row.
	conv.State = models.ConversationStateCompleted
	conv.PinDeliveredAt = &now
	if err := s.save(ctx, conv); err != nil {
		return "", err
	}
	log.WithField("building", bldg.Code).Info("Access PIN delivered, conversation completed")

	out, err := s.reply(ctx, conv, text, replyPinDelivered(pin, bldg, *conv.UnitCode))
	if err != nil {
		return "", err
	}
	s.notifyDelivered(*conv, bldg)
	return out, nil
}

// notifyDelivered runs detached from the request with its own deadline; the
// PIN reply and the per-phone lock never wait on the providers.
func (s *conversationService) notifyDelivered(conv models.Conversation, bldg *models.Building) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ManagementNotifyTimeout)
		defer cancel()
		s.notifier.PinDelivered(ctx, &conv, bldg)
	}()
}

// reply writes the inbound/outbound pair and hands back the outbound text.
func (s *conversationService) reply(ctx context.Context, conv *models.Conversation, incoming, outgoing string) (string, error) {
	if err := s.messages.Exchange(ctx, conv.ID, incoming, outgoing); err != nil {
		return "", err
	}
	return outgoing, nil
}

func (s *conversationService) save(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = s.clock()
	ok, err := repositories.ApplyIfVersion(ctx, conv, s.convRepo.UpdateIfVersion)
	if err != nil {
		return fmt.Errorf("update conversation %s: %w", conv.ID, err)
	}
	if !ok {
		return fmt.Errorf("update conversation %s: %w", conv.ID, utils.ErrRowVersionConflict)
	}
	return nil
}

var affirmativeSubstrings = []string{"yes", "correct", "confirm"}

// isAffirmative is intentionally loose: substring match on a few words,
// plus a bare "y".
func isAffirmative(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "y" {
		return true
	}
	for _, w := range affirmativeSubstrings {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
