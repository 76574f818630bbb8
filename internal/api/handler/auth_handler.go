package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/api/metrics"
	"github.com/playerdash/gateway/internal/api/middleware"
	"github.com/playerdash/gateway/internal/api/sessioncookie"
	"github.com/playerdash/gateway/internal/core/domain"
	"github.com/playerdash/gateway/internal/core/ports"
)

type AuthHandler struct {
	auth          ports.AuthService
	cookieSecret  string
	secureCookies bool
}

func NewAuthHandler(auth ports.AuthService, cookieSecret string, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecret: cookieSecret, secureCookies: secureCookies}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Login authenticates the caller, creates a session, and sets the signed
// session cookie. The response also carries a bearer token for clients that
// cannot use cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrBadRequest, err.Error())
	}

	sess, bearer, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	sessioncookie.Set(c, sessioncookie.Sign(sess.Token, h.cookieSecret), sess.ExpiresAt, h.secureCookies)

	return respond(c, http.StatusOK, loginResponse{User: sess.User, Token: bearer}, "login successful")
}

// Logout destroys the caller's session and clears the cookie. Always
// succeeds, even without a valid session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := sessioncookie.Read(c, h.cookieSecret); ok {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
		metrics.SessionsDestroyedTotal.Inc()
	}
	sessioncookie.Clear(c, h.secureCookies)

	return respond(c, http.StatusOK, nil, "logout successful")
}

// Profile returns the current session's user. Guarded by RequireSession.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.ErrUnauthenticated
	}
	return respond(c, http.StatusOK, user, "profile retrieved")
}

type checkResponse struct {
	IsLoggedIn bool         `json:"isLoggedIn"`
	User       *domain.User `json:"user"`
}

// Check reports login state without failing for anonymous callers.
//
// @Summary      Check login state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  checkResponse
// @Router       /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	res := checkResponse{}
	if sess := middleware.CurrentSession(c); sess != nil {
		res.IsLoggedIn = true
		user := sess.User
		res.User = &user
	}
	return respond(c, http.StatusOK, res, "login state checked")
}
