package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solarline/quotation-service/internal/auth"
	"github.com/solarline/quotation-service/internal/database"
	"github.com/solarline/quotation-service/internal/middleware"
	"github.com/solarline/quotation-service/internal/pkg/token"
)

// RegisterRequest represents an account registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// TokenPairResponse carries a freshly issued token pair
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthHandler serves registration, login and token lifecycle endpoints.
type AuthHandler struct {
	store  *database.Store
	tokens *auth.TokenManager
	logger zerolog.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(store *database.Store, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		store:  store,
		tokens: tokens,
		logger: log.With().Str("component", "auth-handler").Logger(),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	user := database.User{
		ID:           token.User(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	err = h.store.CreateUser(c.Request.Context(), user)
	if errors.Is(err, database.ErrDuplicateUser) {
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already registered"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("username", req.Username).Msg("user create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	pair, err := h.issueTokens(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh handles POST /auth/refresh. The presented refresh token is
// consumed and a fresh pair is issued (rotation).
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.store.ConsumeRefreshToken(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("refresh token lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	pair, err := h.issueTokens(c, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout handles POST /auth/logout. The presented access token's id is
// blacklisted until its natural expiry. Requires authentication.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	expiresAt, _ := c.Get(middleware.ContextTokenExp)
	exp, ok := expiresAt.(time.Time)
	if !ok {
		exp = time.Now().Add(24 * time.Hour)
	}
	if err := h.store.RevokeToken(c.Request.Context(), tokenID, exp); err != nil {
		h.logger.Error().Err(err).Msg("token revocation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// ChangePassword handles POST /auth/change-password. Requires
// authentication.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password change failed"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error().Err(err).Msg("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password change failed"})
		return
	}
	if err := h.store.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("password update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password change failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}

func (h *AuthHandler) issueTokens(c *gin.Context, user database.User) (TokenPairResponse, error) {
	access, err := h.tokens.IssueAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		h.logger.Error().Err(err).Msg("access token issue failed")
		return TokenPairResponse{}, err
	}
	refresh, expiresAt := h.tokens.NewRefreshToken()
	if err := h.store.StoreRefreshToken(c.Request.Context(), refresh, user.ID, expiresAt); err != nil {
		h.logger.Error().Err(err).Msg("refresh token store failed")
		return TokenPairResponse{}, err
	}
	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}
