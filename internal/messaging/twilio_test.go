package messaging

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedRequest(t *testing.T, authToken, webhookURL string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, webhookURL, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", computeSignature(buildSignaturePayload(webhookURL, form), authToken))
	return req
}

func TestValidateTwilioSignature(t *testing.T) {
	form := url.Values{}
	form.Set("From", "+491701234567")
	form.Set("Body", "hello")
	webhookURL := "https://example.com/twilio/incoming-sms"

	req := signedRequest(t, "secret", webhookURL, form)
	assert.True(t, ValidateTwilioSignature(req, "secret", webhookURL))

	req = signedRequest(t, "wrong-token", webhookURL, form)
	assert.False(t, ValidateTwilioSignature(req, "secret", webhookURL))
}

func TestValidateTwilioSignatureMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "https://example.com/hook", nil)
	assert.False(t, ValidateTwilioSignature(req, "secret", "https://example.com/hook"))
}

func TestParseInboundSMS(t *testing.T) {
	form := url.Values{}
	form.Set("MessageSid", "SM123")
	form.Set("From", "+491701234567")
	form.Set("To", "+4915799999999")
	form.Set("Body", "Termin am 08.11.2025")

	req := httptest.NewRequest(http.MethodPost, "/twilio/incoming-sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sms, err := ParseInboundSMS(req)
	require.NoError(t, err)
	assert.Equal(t, "SM123", sms.MessageSid)
	assert.Equal(t, "+491701234567", sms.From)
	assert.Equal(t, "Termin am 08.11.2025", sms.Body)
}

func TestTwiMLReplyEscapes(t *testing.T) {
	got := TwiMLReply(`meet at 10 & bring "notes" <ok>`)
	assert.Contains(t, got, "&amp;")
	assert.Contains(t, got, "&lt;ok&gt;")
	assert.NotContains(t, got, "<ok>")
}
