package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/server/http/dto"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
)

// AuthHandler processes registration, login and logout.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// HomePage handles GET /.
func (h *AuthHandler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", nil)
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", nil)
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", nil)
}

// Register handles POST /register. A new user is logged in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	token, err := h.facade.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrAlreadyExists) && !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			h.logger.Error("registration failed", slog.String("error", err.Error()))
		}
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	middleware.SetSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/bank")
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	middleware.SetSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/bank")
}

// Logout handles GET /logout. The session cookie is expired in this same
// response, so the redirect the browser follows is already anonymous.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
