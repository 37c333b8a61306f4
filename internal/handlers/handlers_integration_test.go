package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wtwr/internal/apperrors"
	"wtwr/internal/config"
	"wtwr/internal/handlers"
	"wtwr/internal/middleware"
	"wtwr/internal/models"
	"wtwr/internal/repositories"
	"wtwr/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full app against a fresh in-memory SQLite database,
// wired exactly as main does it (minus broker and rate limiter).
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.ClothingItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		AppEnv:    "development",
		JWTSecret: "test_jwt_secret",
	}

	userRepo := repositories.NewGORMUserRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	itemService := services.NewItemService(itemRepo, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Use(helmet.New())

	authRequired := middleware.AuthRequired(authService)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app, authRequired)
	handlers.NewItemHandler(itemService).RegisterRoutes(app, authRequired)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Requested resource not found.")
	})

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	resp.Body.Close()
	return resp, decoded
}

// signupAndSignin registers a user and returns its ID and a bearer token.
func signupAndSignin(t *testing.T, app *fiber.App, name, email string) (string, string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/signup", "", map[string]string{
		"name":     name,
		"avatar":   "https://example.com/avatar.png",
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	userID, _ := body["id"].(string)
	assert.NotEmpty(t, userID)

	resp, body = doJSON(t, app, http.MethodPost, "/signin", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	return userID, token
}

func TestSignup(t *testing.T) {
	app, _ := setupApp(t)

	payload := map[string]string{
		"name":     "Jo",
		"avatar":   "https://x.com/a.png",
		"email":    "a@a.com",
		"password": "secret123",
	}

	resp, body := doJSON(t, app, http.MethodPost, "/signup", "", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Jo", body["name"])
	assert.Equal(t, "a@a.com", body["email"])
	// The password never appears in a response, under any key.
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)
	_, hasPasswordField := body["Password"]
	assert.False(t, hasPasswordField)

	// A second identical signup conflicts on the email.
	resp, body = doJSON(t, app, http.MethodPost, "/signup", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["message"])

	// Same email, different other fields: still Conflict.
	payload["name"] = "Josephine"
	payload["password"] = "different456"
	resp, _ = doJSON(t, app, http.MethodPost, "/signup", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app, _ := setupApp(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing fields", map[string]string{"name": "Jo"}},
		{"short name", map[string]string{
			"name": "J", "avatar": "https://x.com/a.png", "email": "a@a.com", "password": "secret123",
		}},
		{"bad avatar URL", map[string]string{
			"name": "Jo", "avatar": "not-a-url", "email": "a@a.com", "password": "secret123",
		}},
		{"bad email", map[string]string{
			"name": "Jo", "avatar": "https://x.com/a.png", "email": "nope", "password": "secret123",
		}},
		{"password over bcrypt's 72-byte cap", map[string]string{
			"name": "Jo", "avatar": "https://x.com/a.png", "email": "a@a.com",
			"password": strings.Repeat("p", 100),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodPost, "/signup", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestSignin(t *testing.T) {
	app, _ := setupApp(t)
	signupAndSignin(t, app, "Jo", "jo@example.com")

	// Wrong password and unknown email must return the identical message.
	resp, body := doJSON(t, app, http.MethodPost, "/signin", "", map[string]string{
		"email":    "jo@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/signin", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", body["message"])

	// Missing fields are a validation failure naming the field, not an
	// auth failure.
	resp, body = doJSON(t, app, http.MethodPost, "/signin", "", map[string]string{
		"email": "jo@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	message, _ := body["message"].(string)
	assert.Contains(t, message, "Password")
}

func TestCurrentUser(t *testing.T) {
	app, db := setupApp(t)
	userID, token := signupAndSignin(t, app, "Jo", "jo@example.com")

	resp, body := doJSON(t, app, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, body["id"])
	assert.Equal(t, "Jo", body["name"])
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)

	// Profile update touches name and avatar only.
	resp, body = doJSON(t, app, http.MethodPatch, "/users/me", token, map[string]string{
		"name":   "Joelle",
		"avatar": "https://example.com/new.png",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Joelle", body["name"])
	assert.Equal(t, "https://example.com/new.png", body["avatar"])

	resp, _ = doJSON(t, app, http.MethodPatch, "/users/me", token, map[string]string{
		"name": "J",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A user deleted since token issuance resolves to NotFound.
	assert.NoError(t, db.Delete(&models.User{}, "id = ?", userID).Error)
	resp, _ = doJSON(t, app, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	ownerID, ownerToken := signupAndSignin(t, app, "Owner", "owner@example.com")
	otherID, otherToken := signupAndSignin(t, app, "Other", "other@example.com")

	// Create
	resp, body := doJSON(t, app, http.MethodPost, "/items", ownerToken, map[string]string{
		"name":     "Raincoat",
		"weather":  "cold",
		"imageUrl": "https://example.com/coat.png",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID, _ := body["id"].(string)
	assert.NotEmpty(t, itemID)
	owner, _ := body["owner"].(map[string]interface{})
	assert.Equal(t, ownerID, owner["id"])

	// Public listing with owner and likes expanded
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	listResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	var items []map[string]interface{}
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&items))
	listResp.Body.Close()
	assert.Len(t, items, 1)
	listedOwner, _ := items[0]["owner"].(map[string]interface{})
	assert.Equal(t, "owner@example.com", listedOwner["email"])

	// Image update
	resp, body = doJSON(t, app, http.MethodPut, "/items/"+itemID, otherToken, map[string]string{
		"imageUrl": "https://example.com/updated.png",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.com/updated.png", body["imageUrl"])

	// Like twice: the likes set stays at one entry for that user.
	resp, body = doJSON(t, app, http.MethodPut, "/items/"+itemID+"/likes", otherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	likes, _ := body["likes"].([]interface{})
	assert.Len(t, likes, 1)

	resp, body = doJSON(t, app, http.MethodPut, "/items/"+itemID+"/likes", otherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	likes, _ = body["likes"].([]interface{})
	assert.Len(t, likes, 1)
	liker, _ := likes[0].(map[string]interface{})
	assert.Equal(t, otherID, liker["id"])

	// Unliking with a user who never liked is a no-op.
	resp, body = doJSON(t, app, http.MethodDelete, "/items/"+itemID+"/likes", ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	likes, _ = body["likes"].([]interface{})
	assert.Len(t, likes, 1)

	// Non-owner delete is Forbidden.
	resp, body = doJSON(t, app, http.MethodDelete, "/items/"+itemID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden: Not the owner", body["message"])

	// Owner delete succeeds and the item drops out of the listing.
	resp, body = doJSON(t, app, http.MethodDelete, "/items/"+itemID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item deleted", body["message"])

	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	listResp, err = app.Test(req, -1)
	assert.NoError(t, err)
	items = nil
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&items))
	listResp.Body.Close()
	assert.Empty(t, items)

	// Deleting again is NotFound.
	resp, _ = doJSON(t, app, http.MethodDelete, "/items/"+itemID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateItemValidation(t *testing.T) {
	app, _ := setupApp(t)
	_, token := signupAndSignin(t, app, "Jo", "jo@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/items", token, map[string]string{
		"name":     "Parka",
		"weather":  "freezing",
		"imageUrl": "https://example.com/parka.png",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	message, _ := body["message"].(string)
	assert.Contains(t, message, "Weather")
	assert.Contains(t, message, "hot, warm, cold")
}

func TestMutationsRequireAuth(t *testing.T) {
	app, _ := setupApp(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/me"},
		{http.MethodPost, "/items"},
		{http.MethodPut, "/items/" + uuid.NewString()},
		{http.MethodDelete, "/items/" + uuid.NewString()},
		{http.MethodPut, "/items/" + uuid.NewString() + "/likes"},
		{http.MethodDelete, "/items/" + uuid.NewString() + "/likes"},
	}
	for _, route := range routes {
		resp, _ := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}

	// Malformed scheme and garbage tokens are also Unauthorized.
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestMalformedItemID(t *testing.T) {
	app, _ := setupApp(t)
	_, token := signupAndSignin(t, app, "Jo", "jo@example.com")

	routes := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPut, "/items/not-a-uuid", map[string]string{"imageUrl": "https://example.com/x.png"}},
		{http.MethodDelete, "/items/not-a-uuid", nil},
		{http.MethodPut, "/items/not-a-uuid/likes", nil},
		{http.MethodDelete, "/items/not-a-uuid/likes", nil},
	}
	for _, route := range routes {
		resp, body := doJSON(t, app, route.method, route.path, token, route.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%s %s", route.method, route.path)
		assert.Equal(t, "Invalid item ID.", body["message"])
	}

	// A well-formed but unknown ID is NotFound, never a 500.
	resp, _ := doJSON(t, app, http.MethodDelete, "/items/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSecurityHeaders(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/items", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))
}

func TestUnmatchedRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/no/such/route", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Requested resource not found.", body["message"])
}
