package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/dto"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func signupPayload(email string) map[string]string {
	return map[string]string{
		"name":             "Asha Rao",
		"email":            email,
		"password":         "supersecret",
		"confirm_password": "supersecret",
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	r := newRouter(services.Actor{})
	r.POST("/api/auth/signup", handler.Signup)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", signupPayload("Asha@GCET.edu.in"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := decode[dto.UserDTO](t, w)
	require.Equal(t, "asha@gcet.edu.in", response.Email)
	require.Equal(t, "Asha Rao", response.FullName)
	require.False(t, response.IsAdmin)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_SignupRejectsOtherDomains(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	r := newRouter(services.Actor{})
	r.POST("/api/auth/signup", handler.Signup)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", signupPayload("asha@gmail.com"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apierrors.ErrCodeInvalidFormat, decodeError(t, w).Code)
	require.Equal(t, validation.EmailWrongDomain, fieldDetails(t, w)["email"])
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	_, err := env.auth.Signup(context.Background(), services.SignupInput{
		Name: "Asha", Email: "asha@gcet.edu.in", Password: "supersecret", ConfirmPassword: "supersecret",
	})
	require.NoError(t, err)

	r := newRouter(services.Actor{})
	r.POST("/api/auth/signup", handler.Signup)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", signupPayload("asha@gcet.edu.in"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, apierrors.ErrCodeAlreadyExists, decodeError(t, w).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	_, err := env.auth.Signup(context.Background(), services.SignupInput{
		Name: "Asha", Email: "asha@gcet.edu.in", Password: "supersecret", ConfirmPassword: "supersecret",
	})
	require.NoError(t, err)

	r := newRouter(services.Actor{})
	r.POST("/api/auth/login", handler.Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "asha@gcet.edu.in",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "asha@gcet.edu.in", decode[dto.UserDTO](t, w).Email)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "asha@gcet.edu.in",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, decodeError(t, w).Code)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	r := newRouter(services.Actor{})
	r.POST("/api/auth/login", handler.Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "asha@gcet.edu.in"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	user, _, err := env.auth.EnsureAdmin(context.Background(), services.CreateAdminInput{
		Name: "Dean", Email: "dean@example.org", Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.True(t, response.IsAdmin)
}

func TestAuthHandler_GetCurrentUserWithoutSession(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	handler.GetCurrentUser(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewAuthHandler(env.auth)

	r := newRouter(studentActor)
	r.POST("/api/auth/logout", handler.Logout)

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
