package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// AuthHandler owns the session lifecycle: login, logout, register, whoami.
type AuthHandler struct {
	gateway    ports.BackendGateway
	store      ports.SessionStore
	cookieName string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(gateway ports.BackendGateway, store ports.SessionStore, cookieName string, ttl time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{gateway: gateway, store: store, cookieName: cookieName, sessionTTL: ttl, log: log}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=viewer analyst admin"`
}

type sessionResponse struct {
	User        *domain.User  `json:"user"`
	DefaultView string        `json:"default_view"`
	Views       []domain.View `json:"views"`
}

// Login authenticates against the backend and establishes a session.
//
// The token only becomes a session once it also resolves to an identity:
// login and whoami must both succeed, so a session can never exist whose
// user was not obtained from its own token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return &domain.ValidationError{Detail: err.Error()}
	}

	ctx := c.Request().Context()
	token, err := h.gateway.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return err
	}

	user, err := h.gateway.CurrentUser(ctx, token)
	if err != nil {
		return err
	}

	sid := middleware.NewSessionID()
	if err := h.store.SetToken(ctx, sid, token); err != nil {
		return err
	}
	if err := h.store.SetUser(ctx, sid, user); err != nil {
		h.log.Debug().Err(err).Msg("session user write-through failed after login")
	}
	middleware.SetSessionCookie(c, h.cookieName, sid, h.sessionTTL)

	h.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("session established")
	return c.JSON(http.StatusOK, sessionResponse{
		User:        user,
		DefaultView: domain.DefaultView(user.Role).Path(),
		Views:       domain.Views(user.Role),
	})
}

// Logout tears the session down on both sides of the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get(middleware.ContextSID).(string)
	if sid != "" {
		if err := h.store.Clear(c.Request().Context(), sid); err != nil {
			h.log.Warn().Err(err).Msg("failed to clear session on logout")
		}
	}
	middleware.ClearSessionCookie(c, h.cookieName)
	return c.NoContent(http.StatusNoContent)
}

// Register proxies a registration to the backend. Structured rejections
// (taken username, weak fields) come back verbatim for the form.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return &domain.ValidationError{Detail: err.Error()}
	}
	role, _ := domain.ParseRole(req.Role)

	err := h.gateway.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "account created"})
}

// Me returns the identity the session guard resolved for this request.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:        user,
		DefaultView: domain.DefaultView(user.Role).Path(),
		Views:       domain.Views(user.Role),
	})
}
