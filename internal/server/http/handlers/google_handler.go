package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gobank/internal/server/http/middleware"
)

const stateCookieName = "gobank_oauth_state"

// GoogleHandler drives the provider redirect flow.
type GoogleHandler struct {
	facade FederatedFacade
	logger *slog.Logger
}

// NewGoogleHandler creates GoogleHandler instance.
func NewGoogleHandler(facade FederatedFacade, logger *slog.Logger) *GoogleHandler {
	return &GoogleHandler{facade: facade, logger: logger}
}

// Begin handles GET /auth/google: binds a random state value to the browser
// and redirects to the provider authorization endpoint.
func (h *GoogleHandler) Begin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		h.logger.Error("state generation failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetCookie(stateCookieName, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, h.facade.AuthCodeURL(state))
}

// Callback handles GET /auth/google/callback. Every failure path lands back
// on the login page, never on an error page.
func (h *GoogleHandler) Callback(c *gin.Context) {
	expected, err := c.Cookie(stateCookieName)
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)
	if err != nil || expected == "" || c.Query("state") != expected {
		h.logger.Warn("oauth state mismatch")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		// Provider denied or errored; the "error" query carries the reason.
		h.logger.Warn("oauth callback without code", slog.String("error", c.Query("error")))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, err := h.facade.CompleteFederatedLogin(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("federated login failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	middleware.SetSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/bank")
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
