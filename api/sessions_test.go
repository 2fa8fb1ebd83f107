package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/pulseai/server/api"
	"github.com/pulseai/server/chat"
	"github.com/pulseai/server/config"
	"github.com/pulseai/server/domain"
	"github.com/pulseai/server/tests/helpers"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, []domain.Message, string) (string, error) {
	return g.reply, g.err
}

func newTestHandler(st *helpers.MemStore, gen chat.Generator) *api.Handler {
	cfg := &config.Config{
		MaxNameLength:    100,
		MaxProblemLength: 200,
		MaxMessageLength: 2000,
	}
	return api.NewHandler(chat.New(st, gen, cfg), st, cfg)
}

func sessionRequest(method, id string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/api/sessions/"+id, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/api/sessions/"+id, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/sessions/:session_id")
	c.SetParamNames("session_id")
	c.SetParamValues(id)
	return c, rec
}

func seedSession(t *testing.T, st *helpers.MemStore, name string, pinned bool, ts time.Time) string {
	t.Helper()
	id, err := st.Insert(context.Background(), &domain.Session{
		PatientName:    name,
		Problem:        "headache",
		AdditionalInfo: "initial message",
		AIResponse:     "initial reply",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "initial message"},
			{Role: domain.RoleAssistant, Content: "initial reply"},
		},
		Timestamp: ts,
		Pinned:    pinned,
	})
	assert.NoError(t, err)
	return id
}

func TestListSessionsOrder(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	idA := seedSession(t, st, "A", false, base.Add(2*time.Hour))
	idB := seedSession(t, st, "B", true, base.Add(1*time.Hour))
	idC := seedSession(t, st, "C", true, base.Add(3*time.Hour))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.ListSessions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Session
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 3)
	assert.Equal(t, []string{idC, idB, idA}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestGetSession(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})
	id := seedSession(t, st, "Ana", false, time.Now().UTC())

	c, rec := sessionRequest(http.MethodGet, id, "")
	assert.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Session
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ana", got.PatientName)
	assert.Len(t, got.Messages, 2)
}

func TestGetSessionInvalidID(t *testing.T) {
	h := newTestHandler(helpers.NewMemStore(), &stubGenerator{})

	c, rec := sessionRequest(http.MethodGet, "bogus", "")
	assert.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	h := newTestHandler(helpers.NewMemStore(), &stubGenerator{})

	c, rec := sessionRequest(http.MethodGet, "000000000000000000000123", "")
	assert.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSessionPinOnly(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})
	id := seedSession(t, st, "Ana", false, time.Now().UTC())

	c, rec := sessionRequest(http.MethodPatch, id, `{"pinned":true}`)
	assert.NoError(t, h.UpdateSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Session
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Pinned)
	assert.Equal(t, "headache", got.Problem, "problem must be untouched by a pin-only patch")
}

func TestUpdateSessionRename(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})
	id := seedSession(t, st, "Ana", true, time.Now().UTC())

	c, rec := sessionRequest(http.MethodPatch, id, `{"problem":"migraine"}`)
	assert.NoError(t, h.UpdateSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Session
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "migraine", got.Problem)
	assert.True(t, got.Pinned)
}

func TestUpdateSessionNoFields(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})
	id := seedSession(t, st, "Ana", false, time.Now().UTC())

	c, rec := sessionRequest(http.MethodPatch, id, `{}`)
	assert.NoError(t, h.UpdateSession(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSessionNotFound(t *testing.T) {
	h := newTestHandler(helpers.NewMemStore(), &stubGenerator{})

	c, rec := sessionRequest(http.MethodPatch, "000000000000000000000123", `{"pinned":true}`)
	assert.NoError(t, h.UpdateSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	st := helpers.NewMemStore()
	h := newTestHandler(st, &stubGenerator{})
	id := seedSession(t, st, "Ana", false, time.Now().UTC())

	c, rec := sessionRequest(http.MethodDelete, id, "")
	assert.NoError(t, h.DeleteSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp["id"])

	c, rec = sessionRequest(http.MethodGet, id, "")
	assert.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSessionNotFound(t *testing.T) {
	h := newTestHandler(helpers.NewMemStore(), &stubGenerator{})

	c, rec := sessionRequest(http.MethodDelete, "000000000000000000000123", "")
	assert.NoError(t, h.DeleteSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(helpers.NewMemStore(), &stubGenerator{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
