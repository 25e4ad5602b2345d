package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stocks-api/auth"
	"stocks-api/database"
	"stocks-api/middleware"
	"stocks-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Username string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AccountHandler struct {
	users  *database.UserRepository
	tokens *auth.TokenService
	log    logrus.FieldLogger
}

func NewAccountHandler(users *database.UserRepository, tokens *auth.TokenService, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{users: users, tokens: tokens, log: log}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		respondError(c, h.log, invalidf("username must not be blank"))
		return
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user := models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
	}
	if err := h.users.CreateWithRole(c.Request.Context(), &user, models.RoleUser); err != nil {
		respondError(c, h.log, fmt.Errorf("register %s: %w", user.Username, err))
		return
	}

	token, err := h.tokens.CreateToken(&user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.WithField("user_id", user.ID).Info("user registered")

	c.JSON(http.StatusOK, NewUserDto{
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, invalid(err))
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), input.Username)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username!"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Username not found and/or password incorrect"})
		return
	}

	token, err := h.tokens.CreateToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewUserDto{
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// currentUser resolves the account behind the request's bearer token.
func currentUser(c *gin.Context, users *database.UserRepository) (*models.User, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := users.FindByUsername(c.Request.Context(), claims.Username)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user %s", ErrUnauthorized, claims.Username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
