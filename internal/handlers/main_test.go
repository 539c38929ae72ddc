package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/venividilaundry/veni-vidi-laundry/internal/config"
	"github.com/venividilaundry/veni-vidi-laundry/internal/database"
	"github.com/venividilaundry/veni-vidi-laundry/internal/routes"
)

// newTestApp builds the full Fiber app over an in-memory SQLite database
// migrated and seeded exactly like production.
func newTestApp(t *testing.T, adminEmails ...string) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		AppPort:      "0",
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		AdminEmails:  adminEmails,
	}

	app, err := routes.NewApp(db, cfg)
	if err != nil {
		t.Fatalf("routes.NewApp: %v", err)
	}

	return app, db
}

type response struct {
	status int
	body   map[string]interface{}
}

// doJSON performs one request against the app and decodes the JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("%s %s: decode body: %v", method, path, err)
	}

	return response{status: resp.StatusCode, body: parsed}
}

func (r response) data(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", r.body)
	}
	return data
}

func (r response) dataList(t *testing.T) []interface{} {
	t.Helper()
	data, ok := r.body["data"].([]interface{})
	if !ok {
		t.Fatalf("response has no data list: %v", r.body)
	}
	return data
}

// register creates an account inside the service area and returns its token.
func register(t *testing.T, app *fiber.App, email, postcode string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":      email,
		"password":   "secret123",
		"first_name": "Test",
		"last_name":  "Customer",
		"postcode":   postcode,
	})
	if resp.status != fiber.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", email, resp.status, resp.body)
	}

	token, ok := resp.body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("register %s: missing token in %v", email, resp.body)
	}
	return token
}

// catalogItemIDs maps a-la-carte item names to their ids.
func catalogItemIDs(t *testing.T, app *fiber.App) map[string]string {
	t.Helper()

	resp := doJSON(t, app, "GET", "/api/orders/pricing", "", nil)
	if resp.status != fiber.StatusOK {
		t.Fatalf("pricing: status %d", resp.status)
	}

	ids := make(map[string]string)
	for _, raw := range resp.dataList(t) {
		item := raw.(map[string]interface{})
		ids[item["item_name"].(string)] = item["id"].(string)
	}
	return ids
}

// createOrder places a dry-cleaning order for the given selections and
// returns the order id.
func createOrder(t *testing.T, app *fiber.App, token string, selections map[string]int) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/orders", token, map[string]interface{}{
		"order_type":  "dry_cleaning",
		"selections":  selections,
		"pickup_date": "2026-09-01",
	})
	if resp.status != fiber.StatusCreated {
		t.Fatalf("create order: status %d, body %v", resp.status, resp.body)
	}
	return resp.data(t)["id"].(string)
}
