package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poofware/contractor-access-service/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerCalls struct {
	health, webhook int
}

func newTestHandler() (http.Handler, *handlerCalls) {
	calls := &handlerCalls{}
	h := NewHTTPHandler(
		func(w http.ResponseWriter, r *http.Request) {
			calls.health++
			w.WriteHeader(http.StatusOK)
		},
		func(w http.ResponseWriter, r *http.Request) {
			calls.webhook++
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusOK)
		},
	)
	return h, calls
}

func TestHTTPHandler_WebhookPreflight(t *testing.T) {
	h, calls := newTestHandler()

	req := httptest.NewRequest(http.MethodOptions, routes.AccessSMSWebhook, nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Twilio-Signature")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.GreaterOrEqual(t, rr.Code, 200)
	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Zero(t, calls.webhook, "preflight must not reach the webhook")
}

func TestHTTPHandler_CrossOriginPost(t *testing.T) {
	h, calls := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, routes.AccessSMSWebhook, strings.NewReader("From=%2B15551230000&Body=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://console.example.com")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 1, calls.webhook)
}

func TestHTTPHandler_Routes(t *testing.T) {
	h, calls := newTestHandler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routes.Health, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, calls.health)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routes.AccessSMSWebhook, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Zero(t, calls.webhook)
}
