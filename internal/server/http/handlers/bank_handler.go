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

// BankHandler manages the balance page and money movement endpoints.
type BankHandler struct {
	facade AccountFacade
	logger *slog.Logger
}

// NewBankHandler constructs BankHandler.
func NewBankHandler(facade AccountFacade, logger *slog.Logger) *BankHandler {
	return &BankHandler{facade: facade, logger: logger}
}

// Landing handles GET /bank.
func (h *BankHandler) Landing(c *gin.Context) {
	userID := CurrentUserID(c)
	user, err := h.facade.Account(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// Session points at a deleted account: treat as anonymous.
			middleware.ClearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Error("account lookup failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.HTML(http.StatusOK, "bank.tmpl", gin.H{
		"Name":          user.DisplayName(),
		"Picture":       user.Picture,
		"AccountNumber": user.AccountNumber,
		"Balance":       user.Balance,
	})
}

// Deposit handles POST /addMoney.
func (h *BankHandler) Deposit(c *gin.Context) {
	userID := CurrentUserID(c)
	var form dto.DepositForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/bank")
		return
	}

	if err := h.facade.Deposit(c.Request.Context(), userID, form.Amount); err != nil {
		if !errors.Is(err, domainErrors.ErrInvalidAmount) {
			h.logger.Error("deposit failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}
	c.Redirect(http.StatusSeeOther, "/bank")
}

// Transfer handles POST /sendMoney.
func (h *BankHandler) Transfer(c *gin.Context) {
	userID := CurrentUserID(c)
	var form dto.TransferForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/bank")
		return
	}

	err := h.facade.Transfer(c.Request.Context(), userID, form.AccountNumber, form.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			h.logger.Warn("transfer to unknown account", slog.Int64("user_id", userID), slog.String("account", form.AccountNumber))
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrInsufficientBalance):
		default:
			h.logger.Error("transfer failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}
	c.Redirect(http.StatusSeeOther, "/bank")
}
