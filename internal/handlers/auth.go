package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"showsync/internal/auth"
	"showsync/internal/models"
)

// handleRegister creates an account and issues its first bearer token.
// A duplicate email is a conflict whose message the client surfaces
// verbatim.
func (h *Handler) handleRegister(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Message: "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))

	existing, err := h.services.DB.GetAccountByEmail(email)
	if err != nil {
		h.services.Logger.Errorf("[Auth] failed to look up account: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "registration failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, models.APIError{Message: "an account with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		h.services.Logger.Errorf("[Auth] failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "registration failed"})
		return
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := h.services.DB.CreateAccount(account); err != nil {
		h.services.Logger.Errorf("[Auth] failed to create account: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "registration failed"})
		return
	}

	h.issueToken(c, account.ID)
}

// handleLogin exchanges credentials for a bearer token.
func (h *Handler) handleLogin(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Message: "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(creds.Email))

	account, err := h.services.DB.GetAccountByEmail(email)
	if err != nil {
		h.services.Logger.Errorf("[Auth] failed to look up account: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "login failed"})
		return
	}
	if account == nil || !auth.CheckPassword(account.PasswordHash, creds.Password) {
		c.JSON(http.StatusUnauthorized, models.APIError{Message: "invalid email or password"})
		return
	}

	h.issueToken(c, account.ID)
}

func (h *Handler) issueToken(c *gin.Context, accountID string) {
	token, err := auth.IssueToken(h.config.JWTSecret, accountID)
	if err != nil {
		h.services.Logger.Errorf("[Auth] failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}
