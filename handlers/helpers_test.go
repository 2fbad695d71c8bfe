package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"service-booking-api/config"
	"service-booking-api/models"
	"service-booking-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter gives each test a fresh in-memory database and a fully wired
// router, including the bootstrap admin account.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	require.NoError(t, config.EnsureAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPass))

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// doJSON performs a request with an optional bearer token and decodes the
// JSON response body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

var userSeq int

// registerUser creates an account via the API and returns its token and ID
func registerUser(t *testing.T, r *gin.Engine, role models.UserRole) (token string, id uint) {
	t.Helper()
	userSeq++
	email := fmt.Sprintf("user%d@example.com", userSeq)

	body := gin.H{
		"name":     fmt.Sprintf("User %d", userSeq),
		"email":    email,
		"password": "secret123",
		"phone":    "1234567890",
		"role":     role,
	}
	if role == models.RoleProvider {
		body["specialization"] = "Plumbing"
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	token = resp["token"].(string)
	user := resp["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

// loginAdmin logs in as the bootstrap admin
func loginAdmin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	cfg := config.App
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    cfg.AdminEmail,
		"password": cfg.AdminPass,
	})
	require.Equal(t, http.StatusOK, w.Code, "admin login failed: %s", w.Body.String())
	return resp["token"].(string)
}

// setupApprovedProvider registers a provider, approves it as admin, and
// creates one service, returning everything later tests need.
func setupApprovedProvider(t *testing.T, r *gin.Engine, price float64) (providerToken string, providerID uint, serviceID uint) {
	t.Helper()
	adminToken := loginAdmin(t, r)
	providerToken, providerID = registerUser(t, r, models.RoleProvider)

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/providers/%d/approve", providerID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, "approve failed: %s", w.Body.String())

	w, resp := doJSON(t, r, http.MethodPost, "/api/provider/services", providerToken, gin.H{
		"name":  "Pipe Repair",
		"price": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create service failed: %s", w.Body.String())
	service := resp["service"].(map[string]interface{})
	return providerToken, providerID, uint(service["id"].(float64))
}

// createBooking books the given service as the customer
func createBooking(t *testing.T, r *gin.Engine, customerToken string, serviceID uint) uint {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/customer/bookings", customerToken, gin.H{
		"service_id": serviceID,
		"date":       "2025-01-10",
		"time":       "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, "create booking failed: %s", w.Body.String())
	return uint(resp["booking_id"].(float64))
}
