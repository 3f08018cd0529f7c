package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"learninglife/config"
	"learninglife/database"
	"learninglife/models"
	"learninglife/routers/authRoutes"
	"learninglife/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestSignupStoresHashedCredential(t *testing.T) {
	app := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "a@x.com").First(&stored).Error)

	assert.NotEqual(t, "pw1", stored.Password)
	assert.True(t, utils.CheckPassword("pw1", stored.Password))
	assert.False(t, utils.CheckPassword("pw2", stored.Password))
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	app := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The unique index on email turns the second insert into a conflict, so
	// this holds for concurrent registrations too, not just sequential ones
	resp = postJSON(t, app, "/auth/register", fiber.Map{
		"name": "also alice", "email": "a@x.com", "password": "pw9999",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email is already registered!", decodeEnvelope(t, resp)["message"])

	// The original account is untouched
	var users []models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "a@x.com").Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "", "email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestLoginScenario(t *testing.T) {
	app := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Correct password logs in and yields a token
	resp = postJSON(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// Wrong password is rejected with a generic message
	resp = postJSON(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "pw2"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid credentials!", envelope["message"])

	// Unknown email gets the exact same rejection
	resp = postJSON(t, app, "/auth/login", fiber.Map{"email": "b@x.com", "password": "pw1"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	envelope = decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid credentials!", envelope["message"])
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	app := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/register", fiber.Map{
		"name": "alice", "email": "a@x.com", "password": "pw1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A regular user cannot use the admin entry point, and the rejection
	// does not reveal that the credentials themselves were correct
	resp = postJSON(t, app, "/auth/adminlogin", fiber.Map{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Invalid credentials!", envelope["message"])

	// The seeded admin account can
	config.AppConfig.AdminEmail = "admin@learninglife.test"
	config.AppConfig.AdminPassword = "admin-secret"
	defer func() {
		config.AppConfig.AdminEmail = ""
		config.AppConfig.AdminPassword = ""
	}()
	require.NoError(t, database.SeedAdminUser(database.Database.Db))

	resp = postJSON(t, app, "/auth/adminlogin", fiber.Map{"email": "admin@learninglife.test", "password": "admin-secret"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
