//go:build (dev_test || staging_test) && integration

package integration

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/routes"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func uniquePhone() string {
	return fmt.Sprintf("%s%07d", utils.TestPhoneNumberBase, rand.Intn(10_000_000))
}

func sendSMS(t *testing.T, from, body string) (int, string) {
	t.Helper()
	if cfg.LDFlag_ValidateTwilioSignature {
		t.Skip("validate_twilio_signature is on; unsigned webhook calls would be rejected")
	}
	form := url.Values{"From": {from}, "Body": {body}}
	resp, err := http.Post(baseURL+routes.AccessSMSWebhook, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestSMSFlow_ToConfirmation(t *testing.T) {
	phone := uniquePhone()
	ctx := context.Background()

	status, body := sendSMS(t, phone, "Ace Roofing")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Ace Roofing")

	conv, err := convRepo.FindActiveByPhone(ctx, phone)
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.Equal(t, models.ConversationStateAwaitingInfo, conv.State)

	status, body = sendSMS(t, phone, "B2G South end")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Building B")

	conv, err = convRepo.FindActiveByPhone(ctx, phone)
	require.NoError(t, err)
	require.Equal(t, models.ConversationStateConfirming, conv.State)
	require.Equal(t, "B2G", utils.Val(conv.UnitCode))

	msgs, err := msgRepo.ListByConversationID(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	require.Equal(t, models.MessageDirectionIncoming, msgs[0].Direction)
	require.Equal(t, models.MessageDirectionOutgoing, msgs[3].Direction)

	// Decline and start over; whatever the wall clock, NO never reaches the window check.
	status, body = sendSMS(t, phone, "no")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "start over")
}

func TestSMSFlow_RejectedCompanyWritesNothing(t *testing.T) {
	phone := uniquePhone()

	status, body := sendSMS(t, phone, "asdfgh")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "couldn't recognize")

	convs, err := convRepo.ListByPhone(context.Background(), phone)
	require.NoError(t, err)
	require.Empty(t, convs)
}

func TestSMSFlow_MissingFieldsIs400(t *testing.T) {
	status, _ := sendSMS(t, "", "Ace Roofing")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestConversationRepo_VersionConflict(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	conv := &models.Conversation{
		ID:          uuid.New(),
		PhoneNumber: uniquePhone(),
		CompanyName: "Best Pipes Co",
		State:       models.ConversationStateAwaitingInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, convRepo.Create(ctx, conv))

	stale := *conv
	conv.State = models.ConversationStateConfirming
	tag, err := convRepo.UpdateIfVersion(ctx, conv, conv.RowVersion)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())

	tag, err = convRepo.UpdateIfVersion(ctx, &stale, stale.RowVersion)
	require.NoError(t, err)
	require.EqualValues(t, 0, tag.RowsAffected())

	// A second live conversation for the same phone violates the partial unique index.
	dup := *conv
	dup.ID = uuid.New()
	require.Error(t, convRepo.Create(ctx, &dup))
}

func TestActivePinRepo_FindCurrent(t *testing.T) {
	ctx := context.Background()
	b, err := buildingRepo.GetByCode(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, b)

	today := utils.DateOnlyIn(time.Now(), cfg.PropertyLocation)
	pin, err := pinRepo.FindCurrent(ctx, b.ID, today)
	require.NoError(t, err)
	require.NotNil(t, pin)
	require.True(t, pin.CoversDate(today))

	pin, err = pinRepo.FindCurrent(ctx, b.ID, today.AddDate(5, 0, 0))
	require.NoError(t, err)
	require.Nil(t, pin)
}
