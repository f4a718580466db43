package leads

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termio-ai/termio/pkg/logging"
)

type fakeSMS struct {
	sent map[string]string // to -> body
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = make(map[string]string)
	}
	f.sent[to] = body
	return nil
}

type fakeStarter struct {
	keys []string
	err  error
}

func (f *fakeStarter) StartSession(_ context.Context, key, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

func postLead(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/lead-webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleWebhook(w, req)
	return w
}

func TestHandleWebhookGreetsLead(t *testing.T) {
	sms := &fakeSMS{}
	starter := &fakeStarter{}
	h := NewHandler(NewInMemoryRepository(), sms, starter, "+49", "Termio", logging.New("error"))

	w := postLead(t, h, `{"firstName":"Anna","lastName":"Muster","phone":"0170 1234567","email":"anna@example.com","source":"crm"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	require.Len(t, starter.keys, 1)
	assert.Equal(t, "+491701234567", starter.keys[0], "session key must be the normalized phone")

	body, ok := sms.sent["+491701234567"]
	require.True(t, ok, "greeting must go to the normalized phone")
	assert.Contains(t, body, "Anna")
	assert.Contains(t, body, "Termio")
}

func TestHandleWebhookMalformedBody(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), &fakeSMS{}, &fakeStarter{}, "+49", "Termio", logging.New("error"))

	w := postLead(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestHandleWebhookMissingFields(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), &fakeSMS{}, &fakeStarter{}, "+49", "Termio", logging.New("error"))

	w := postLead(t, h, `{"lastName":"Muster","phone":"0170 1234567"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postLead(t, h, `{"firstName":"Anna"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWebhookSMSFailure(t *testing.T) {
	sms := &fakeSMS{err: errors.New("carrier down")}
	h := NewHandler(NewInMemoryRepository(), sms, &fakeStarter{}, "+49", "Termio", logging.New("error"))

	w := postLead(t, h, `{"firstName":"Anna","phone":"+491701234567"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
