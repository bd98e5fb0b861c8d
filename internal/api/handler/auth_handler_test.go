package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

type stubAuthGateway struct {
	ports.BackendGateway

	token      string
	loginErr   error
	user       *domain.User
	whoamiErr  error
	registered *ports.RegisterInput
}

func (s *stubAuthGateway) Login(_ context.Context, _, _ string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

func (s *stubAuthGateway) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	if s.whoamiErr != nil {
		return nil, s.whoamiErr
	}
	return s.user, nil
}

func (s *stubAuthGateway) Register(_ context.Context, input ports.RegisterInput) error {
	s.registered = &input
	return nil
}

type memStore struct {
	records map[string]*ports.SessionRecord
	cleared []string
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*ports.SessionRecord)}
}

func (s *memStore) Get(_ context.Context, sid string) (*ports.SessionRecord, error) {
	rec, ok := s.records[sid]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return rec, nil
}

func (s *memStore) SetToken(_ context.Context, sid, token string) error {
	s.records[sid] = &ports.SessionRecord{Token: token}
	return nil
}

func (s *memStore) SetUser(_ context.Context, sid string, user *domain.User) error {
	rec, ok := s.records[sid]
	if !ok {
		return domain.ErrNoSession
	}
	rec.User = user
	return nil
}

func (s *memStore) Clear(_ context.Context, sid string) error {
	delete(s.records, sid)
	s.cleared = append(s.cleared, sid)
	return nil
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_EstablishesSession(t *testing.T) {
	gw := &stubAuthGateway{
		token: "tok-abc",
		user:  &domain.User{Username: "alice", Role: domain.RoleAnalyst},
	}
	store := newMemStore()
	h := NewAuthHandler(gw, store, "influence_session", 24*time.Hour, zerolog.Nop())

	c, rec := jsonContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// The response cookie must reference a stored session holding the token,
	// never the token itself.
	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "influence_session" {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("no session cookie set")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
	if cookie.Value == "tok-abc" {
		t.Fatal("cookie leaks the backend token")
	}
	stored, err := store.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("no stored session for cookie sid: %v", err)
	}
	if stored.Token != "tok-abc" {
		t.Fatalf("stored token = %q", stored.Token)
	}
	if stored.User == nil || stored.User.Username != "alice" {
		t.Fatalf("stored user = %+v", stored.User)
	}

	var body sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.User == nil || body.User.Role != domain.RoleAnalyst {
		t.Fatalf("response user = %+v", body.User)
	}
	if body.DefaultView != "/" {
		t.Fatalf("analyst default view = %q", body.DefaultView)
	}
	if len(body.Views) == 0 {
		t.Fatal("response is missing the view menu")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	gw := &stubAuthGateway{loginErr: domain.ErrUnauthenticated}
	store := newMemStore()
	h := NewAuthHandler(gw, store, "influence_session", time.Hour, zerolog.Nop())

	c, _ := jsonContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"wrong"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if len(store.records) != 0 {
		t.Fatal("failed login must not create a session")
	}
}

func TestAuthHandler_Login_WhoamiFailureCreatesNoSession(t *testing.T) {
	gw := &stubAuthGateway{token: "tok-abc", whoamiErr: domain.ErrBackendUnavailable}
	store := newMemStore()
	h := NewAuthHandler(gw, store, "influence_session", time.Hour, zerolog.Nop())

	c, rec := jsonContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"secret1"}`)
	if err := h.Login(c); err == nil {
		t.Fatal("expected error when identity resolution fails")
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "influence_session" && ck.Value != "" {
			t.Fatal("cookie set despite failed identity resolution")
		}
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthGateway{}, newMemStore(), "influence_session", time.Hour, zerolog.Nop())

	c, _ := jsonContext(t, http.MethodPost, "/auth/login", `{"username":"alice"}`)
	err := h.Login(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Detail, "password is required") {
		t.Fatalf("unexpected detail: %q", ve.Detail)
	}
}

func TestAuthHandler_Register_ValidatesBeforeProxying(t *testing.T) {
	gw := &stubAuthGateway{}
	h := NewAuthHandler(gw, newMemStore(), "influence_session", time.Hour, zerolog.Nop())

	c, _ := jsonContext(t, http.MethodPost, "/auth/register",
		`{"username":"al","email":"not-an-email","password":"123","role":"root"}`)
	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.registered != nil {
		t.Fatal("invalid registration reached the backend")
	}

	c, rec := jsonContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1","role":"analyst"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if gw.registered == nil || gw.registered.Role != domain.RoleAnalyst {
		t.Fatalf("registered input = %+v", gw.registered)
	}
}

func TestAuthHandler_Logout_ClearsStoreAndCookie(t *testing.T) {
	store := newMemStore()
	_ = store.SetToken(context.Background(), "sid-1", "tok")
	h := NewAuthHandler(&stubAuthGateway{}, store, "influence_session", time.Hour, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextSID, "sid-1")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.records) != 0 {
		t.Fatal("session survived logout")
	}
	expired := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "influence_session" && ck.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("session cookie not expired on logout")
	}
}
