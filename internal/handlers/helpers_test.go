package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/ayuhealth/internal/config"
	"github.com/example/ayuhealth/internal/database"
	"github.com/example/ayuhealth/internal/routes"
	"github.com/example/ayuhealth/internal/utils"
)

const (
	testSecret     = "handler-test-secret"
	testOwnerEmail = "owner@ayuhealth.test"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	adminHash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)

	cfg := &config.Config{
		AppPort:        "0",
		JWTSecret:      testSecret,
		TokenExpires:   time.Hour,
		BaseURL:        "http://localhost",
		DisableCaptcha: true,
		AdminUser:      "admin",
		AdminPassHash:  adminHash,
		OwnerEmail:     testOwnerEmail,
		OrderWindow:    24 * time.Hour,
		ShopName:       "AyuHealth",
		ShopWebsite:    "https://ayuhealth.test",
	}

	app := fiber.New()
	routes.Register(app, db, cfg)

	return app, db, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
		if decoded == nil {
			decoded = map[string]any{"body": string(raw)}
		}
	}

	return resp, decoded
}
