package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ayuhealth/internal/models"
	"github.com/example/ayuhealth/internal/utils"
)

func signupBody(name, email string) map[string]any {
	return map[string]any{
		"name":             name,
		"email":            email,
		"password":         "pw123456",
		"confirm_password": "pw123456",
	}
}

func TestSignupValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{name: "ok", body: signupBody("Ann", "ann@x.com"), wantCode: http.StatusCreated},
		{name: "missing_name", body: map[string]any{"email": "b@x.com", "password": "pw123456", "confirm_password": "pw123456"}, wantCode: http.StatusBadRequest},
		{name: "bad_email", body: signupBody("Bob", "not-an-email"), wantCode: http.StatusBadRequest},
		{name: "password_mismatch", body: map[string]any{"name": "Cam", "email": "cam@x.com", "password": "pw123456", "confirm_password": "other"}, wantCode: http.StatusBadRequest},
		{name: "duplicate_email", body: signupBody("Dee", "ann@x.com"), wantCode: http.StatusConflict},
		{name: "duplicate_name", body: signupBody("Ann", "ann2@x.com"), wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	app, db, cfg := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("Ann", "ann@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "email = ?", "ann@x.com").Error)
	assert.False(t, customer.IsVerified)

	login := map[string]any{"email": "ann@x.com", "password": "pw123456"}

	// Login before verification is rejected with a verify hint, even though
	// the password is correct.
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["body"], "please verify")

	token, err := utils.GenerateEmailToken(cfg.JWTSecret, "ann@x.com", utils.PurposeVerifyEmail)
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodGet, "/verify_email/"+token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&customer, "email = ?", "ann@x.com").Error)
	assert.True(t, customer.IsVerified)

	// Replaying the still-valid token stays a success.
	resp, _ = doJSON(t, app, http.MethodGet, "/verify_email/"+token, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	session, ok := body["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ann", session["name"])
	assert.Equal(t, "ann@x.com", session["email"])
	assert.NotEmpty(t, body["token"])
}

func TestVerifyEmailBadTokens(t *testing.T) {
	app, _, cfg := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/verify_email/garbage", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A reset token must not pass as a verification token.
	resetToken, err := utils.GenerateEmailToken(cfg.JWTSecret, "ann@x.com", utils.PurposePasswordReset)
	require.NoError(t, err)
	resp, _ = doJSON(t, app, http.MethodGet, "/verify_email/"+resetToken, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("Ann", "ann@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, db.Model(&models.Customer{}).Where("email = ?", "ann@x.com").Update("is_verified", true).Error)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode int
	}{
		{name: "wrong_password", email: "ann@x.com", password: "nope", wantCode: http.StatusUnauthorized},
		{name: "unknown_account", email: "ghost@x.com", password: "pw123456", wantCode: http.StatusUnauthorized},
		{name: "missing_fields", email: "", password: "", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
				map[string]any{"email": tt.email, "password": tt.password})
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestPasswordResetFlow(t *testing.T) {
	app, db, cfg := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", signupBody("Ann", "ann@x.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, db.Model(&models.Customer{}).Where("email = ?", "ann@x.com").Update("is_verified", true).Error)

	// The response doesn't reveal whether the account exists.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", "", map[string]any{"email": "ann@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resetToken, err := utils.GenerateEmailToken(cfg.JWTSecret, "ann@x.com", utils.PurposePasswordReset)
	require.NoError(t, err)

	// A verification token is not accepted on the reset endpoint.
	verifyToken, err := utils.GenerateEmailToken(cfg.JWTSecret, "ann@x.com", utils.PurposeVerifyEmail)
	require.NoError(t, err)
	resp, _ = doJSON(t, app, http.MethodPost, "/reset-password/"+verifyToken, "", map[string]any{"new_password": "newpw123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/reset-password/"+resetToken, "", map[string]any{"new_password": "newpw123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]any{"email": "ann@x.com", "password": "newpw123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/admin/login", "",
		map[string]any{"username": "admin", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/admin/login", "",
		map[string]any{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestShortPasswordOnReset(t *testing.T) {
	app, _, cfg := newTestApp(t)

	token, err := utils.GenerateEmailToken(cfg.JWTSecret, "ann@x.com", utils.PurposePasswordReset)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/reset-password/%s", token), "",
		map[string]any{"new_password": "short"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
