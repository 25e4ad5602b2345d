package handlers

import (
	"net/http"
	"testing"

	"stocks-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s := setupServer(t)

	w := s.do(t, http.MethodPost, "/api/account/register", RegisterInput{
		Username: "Alice",
		Email:    "alice@example.com",
		Password: testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var registered NewUserDto
	decode(t, w, &registered)
	assert.Equal(t, "alice", registered.Username)
	assert.Equal(t, "alice@example.com", registered.Email)

	var user models.User
	require.NoError(t, s.db.Preload("Roles").Where("username = ?", "alice").First(&user).Error)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, models.RoleUser, user.Roles[0].Name)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	// --- login with correct credentials, mixed-case username ---
	w = s.do(t, http.MethodPost, "/api/account/login", LoginInput{Username: "ALICE", Password: testPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var loggedIn NewUserDto
	decode(t, w, &loggedIn)

	claims, err := s.tokens.ParseToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, user.ID, claims.Subject)

	// --- wrong password ---
	w = s.do(t, http.MethodPost, "/api/account/login", LoginInput{Username: "alice", Password: "Wr0ng#Password!"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "token")
	assert.Contains(t, w.Body.String(), "password incorrect")

	// --- unknown user ---
	w = s.do(t, http.MethodPost, "/api/account/login", LoginInput{Username: "nobody", Password: testPassword}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username!")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := setupServer(t)
	s.register(t, "alice")

	w := s.do(t, http.MethodPost, "/api/account/register", RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: testPassword,
	}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "token")

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "a@example.com", Password: testPassword}},
		{"blank username", RegisterInput{Username: "   ", Email: "a@example.com", Password: testPassword}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: testPassword}},
		{"missing password", RegisterInput{Username: "alice", Email: "a@example.com"}},
		{"weak password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/account/register", tt.input, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginValidation(t *testing.T) {
	s := setupServer(t)
	w := s.do(t, http.MethodPost, "/api/account/login", map[string]string{"password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
