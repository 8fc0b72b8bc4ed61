package authController

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.AdminSession{},
		&models.UserProfile{},
	))

	config.AppConfig = &config.Config{
		JWTKey:       "test-secret",
		SaltRound:    4,
		SessionHours: 24,
	}
	database.Database = database.DbInstance{Db: db}
	return db
}

func setupApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/admin/login", func(c *fiber.Ctx) error {
		reqData := new(AdminLoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedAdminLogin", reqData)
		return AdminLogin(c)
	})
	app.Post("/api/auth/admin/logout", AdminLogout)
	app.Get("/api/auth/admin/verify", middleware.AdminAuth, VerifyAdminSession)
	app.Post("/api/auth/user/login", func(c *fiber.Ctx) error {
		reqData := new(UserLoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		c.Locals("validatedUserLogin", reqData)
		return UserLogin(c)
	})
	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password, role string) models.AdminUser {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	require.NoError(t, err)

	admin := models.AdminUser{
		Username: username,
		Password: string(hashed),
		FullName: "Test Admin",
		Role:     role,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func TestAdminLoginAndVerify(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()
	seedAdmin(t, db, "admin", "correct-horse", models.RoleAdmin)

	code, env := doRequest(t, app, "POST", "/api/auth/admin/login", "", AdminLoginRequest{
		Username: "admin", Password: "correct-horse",
	})
	require.Equal(t, fiber.StatusOK, code)
	require.True(t, env.Status)

	var loginData struct {
		Token string `json:"token"`
		Admin struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	require.NotEmpty(t, loginData.Token)
	assert.Equal(t, models.RoleAdmin, loginData.Admin.Role)

	code, env = doRequest(t, app, "GET", "/api/auth/admin/verify", loginData.Token, nil)
	require.Equal(t, fiber.StatusOK, code)

	var verifyData struct {
		Admin middleware.AdminContext `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verifyData))
	assert.Equal(t, "admin", verifyData.Admin.Username)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()
	seedAdmin(t, db, "admin", "correct-horse", models.RoleAdmin)

	code, env := doRequest(t, app, "POST", "/api/auth/admin/login", "", AdminLoginRequest{
		Username: "admin", Password: "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.False(t, env.Status)

	code, _ = doRequest(t, app, "POST", "/api/auth/admin/login", "", AdminLoginRequest{
		Username: "nobody", Password: "correct-horse",
	})
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestAdminVerifyRejectsExpiredSession(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()
	admin := seedAdmin(t, db, "admin", "correct-horse", models.RoleAdmin)

	require.NoError(t, db.Create(&models.AdminSession{
		AdminID:   admin.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)

	code, _ := doRequest(t, app, "GET", "/api/auth/admin/verify", "stale-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestAdminVerifyRejectsMissingToken(t *testing.T) {
	setupTestDB(t)
	app := setupApp()

	code, _ := doRequest(t, app, "GET", "/api/auth/admin/verify", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestAdminLogoutRemovesSession(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()
	seedAdmin(t, db, "admin", "correct-horse", models.RoleAdmin)

	code, env := doRequest(t, app, "POST", "/api/auth/admin/login", "", AdminLoginRequest{
		Username: "admin", Password: "correct-horse",
	})
	require.Equal(t, fiber.StatusOK, code)

	var loginData struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))

	code, _ = doRequest(t, app, "POST", "/api/auth/admin/logout", loginData.Token, nil)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doRequest(t, app, "GET", "/api/auth/admin/verify", loginData.Token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	var count int64
	require.NoError(t, db.Model(&models.AdminSession{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAdminLogoutUnknownTokenIsIdempotent(t *testing.T) {
	setupTestDB(t)
	app := setupApp()

	code, env := doRequest(t, app, "POST", "/api/auth/admin/logout", "never-issued", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)
}

func TestUserLoginUpsertsProfileAndIssuesToken(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp()

	code, env := doRequest(t, app, "POST", "/api/auth/user/login", "", UserLoginRequest{
		Mobile: "919876543210", ArmyNumber: "JC-123456", Name: "Ram Singh",
	})
	require.Equal(t, fiber.StatusOK, code)

	var loginData struct {
		Token string `json:"token"`
		User  struct {
			ArmyNumber string `json:"armyNumber"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	assert.NotEmpty(t, loginData.Token)
	assert.Equal(t, "JC-123456", loginData.User.ArmyNumber)

	// Logging in again with new contact details updates the same row.
	code, _ = doRequest(t, app, "POST", "/api/auth/user/login", "", UserLoginRequest{
		Mobile: "918888777666", ArmyNumber: "JC-123456", Name: "Ram Singh",
	})
	require.Equal(t, fiber.StatusOK, code)

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var profile models.UserProfile
	require.NoError(t, db.Where("army_number = ?", "JC-123456").First(&profile).Error)
	assert.Equal(t, "918888777666", profile.Mobile)
}
