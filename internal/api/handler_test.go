package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sleepwell/sleepwell/internal/dialog"
	"github.com/sleepwell/sleepwell/internal/engagement"
	"github.com/sleepwell/sleepwell/internal/messages"
	"github.com/sleepwell/sleepwell/internal/repository"
	"github.com/sleepwell/sleepwell/internal/session"
	"github.com/sleepwell/sleepwell/internal/tips"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := dialog.NewEngine(
		repo,
		session.NewMemory(),
		messages.NewEnglish(),
		engagement.NewTracker(repo),
		tips.NewSelectorWithRand(repo, rand.New(rand.NewSource(1))),
		logger,
	)
	return NewRouter(engine, logger)
}

func postWebhook(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestWebhookFirstTurn(t *testing.T) {
	router := newTestRouter()

	var body Request
	body.Version = "1.0"
	body.Session.UserID = "u1"
	body.Session.New = true
	body.Request.Command = "hello"

	w := postWebhook(t, router, &body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response.Text == "" {
		t.Error("expected a non-empty reply")
	}
	if resp.Response.EndSession {
		t.Error("first turn must not end the session")
	}
	if len(resp.Response.Buttons) == 0 {
		t.Error("expected menu buttons")
	}
}

func TestWebhookMissingUserID(t *testing.T) {
	router := newTestRouter()

	var body Request
	body.Request.Command = "hello"

	w := postWebhook(t, router, &body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestWebhookMalformedJSON(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestWebhookQuitEndsSession(t *testing.T) {
	router := newTestRouter()

	var body Request
	body.Session.UserID = "u1"
	body.Request.Command = "hello"
	postWebhook(t, router, &body) // first turn lands on the menu

	body.Request.Command = "enough"
	w := postWebhook(t, router, &body)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Response.EndSession {
		t.Error("expected end_session after quit")
	}
}
