package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cargolink/internal/db"
	"cargolink/internal/middleware"
	"cargolink/internal/models"
	"cargolink/internal/router"
	"cargolink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the full middleware and route stack against a fresh
// in-memory database, the same way main does.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	// Drop cached unseen counts keyed by a previous test's user IDs
	utils.GetCache().Purge()

	r := gin.New()
	r.Use(sessions.Sessions("cargolink_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

// client carries the session cookies of one logged-in user.
type client struct {
	engine  *gin.Engine
	cookies []*http.Cookie
}

func (cl *client) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	cl.engine.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		cl.cookies = cookies
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signup(t *testing.T, engine *gin.Engine, role, country string) (*client, map[string]interface{}) {
	t.Helper()

	cl := &client{engine: engine}
	rec := cl.do(t, http.MethodPost, "/signup", gin.H{
		"email":    uuid.NewString() + "@example.com",
		"password": "secret-password",
		"role":     role,
		"country":  country,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, cl.cookies)
	return cl, decode(t, rec)
}

func TestSignupLoginMe(t *testing.T) {
	engine := setupServer(t)

	cl := &client{engine: engine}
	email := uuid.NewString() + "@example.com"

	rec := cl.do(t, http.MethodPost, "/signup", gin.H{
		"email":    email,
		"password": "secret-password",
		"role":     models.RoleExportator,
		"country":  "Algeria",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = cl.do(t, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, email, decode(t, rec)["email"])

	// Unknown roles are rejected at binding
	bad := &client{engine: engine}
	rec = bad.do(t, http.MethodPost, "/signup", gin.H{
		"email":    uuid.NewString() + "@example.com",
		"password": "secret-password",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No session, no /me
	anon := &client{engine: engine}
	rec = anon.do(t, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A fresh login works with the signup credentials
	again := &client{engine: engine}
	rec = again.do(t, http.MethodPost, "/login", gin.H{"email": email, "password": "secret-password"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = again.do(t, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = again.do(t, http.MethodPost, "/login", gin.H{"email": email, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProposalFlowOverHTTP(t *testing.T) {
	engine := setupServer(t)

	exporter, _ := signup(t, engine, models.RoleExportator, "Algeria")
	mediator, _ := signup(t, engine, models.RoleMediator, "France")

	rec := exporter.do(t, http.MethodPost, "/posts", gin.H{
		"product":  "Dates",
		"quantity": 500,
		"unity":    "kg",
		"from":     "Biskra",
		"to":       "Marseille",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	postID := uint(decode(t, rec)["id"].(float64))

	// Roles gate publishing: mediators ship, they don't sell
	rec = mediator.do(t, http.MethodPost, "/posts", gin.H{
		"product":  "Dates",
		"quantity": 500,
		"from":     "Biskra",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = mediator.do(t, http.MethodPost, "/proposals", gin.H{
		"subject_kind": "post",
		"subject_id":   postID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	proposalID := uint(decode(t, rec)["id"].(float64))

	// A second proposal on the same post conflicts while the first is active
	rec = mediator.do(t, http.MethodPost, "/proposals", gin.H{
		"subject_kind": "post",
		"subject_id":   postID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The owner sees the fan-out
	rec = exporter.do(t, http.MethodGet, "/notifications/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode(t, rec)
	assert.Equal(t, float64(1), feed["unseen_count"])

	// Only the owner may accept
	rec = mediator.do(t, http.MethodPost, fmt.Sprintf("/proposals/%d/accept", proposalID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = exporter.do(t, http.MethodPost, fmt.Sprintf("/proposals/%d/accept", proposalID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "accepted", decode(t, rec)["status"])

	// Acceptance fans out to the sender
	rec = mediator.do(t, http.MethodGet, "/notifications/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed = decode(t, rec)
	require.Equal(t, float64(1), feed["unseen_count"])
	notifications := feed["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	notificationID := uint(notifications[0].(map[string]interface{})["id"].(float64))

	// Refusing after acceptance is an invalid transition
	rec = exporter.do(t, http.MethodPost, fmt.Sprintf("/proposals/%d/refuse", proposalID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Reading the notification clears the badge
	rec = mediator.do(t, http.MethodPost, fmt.Sprintf("/notifications/%d/read", notificationID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = mediator.do(t, http.MethodGet, "/notifications/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["unseen_count"])

	// The accepted proposal unlocks the shipping offer for the owner
	rec = exporter.do(t, http.MethodPost, "/shipping-offers", gin.H{"post_id": postID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "France", decode(t, rec)["to"])
}

func TestContainerRoutesRequireMediator(t *testing.T) {
	engine := setupServer(t)

	exporter, _ := signup(t, engine, models.RoleExportator, "Algeria")
	mediator, _ := signup(t, engine, models.RoleMediator, "France")

	rec := exporter.do(t, http.MethodPost, "/containers", gin.H{
		"name":     "Box A",
		"from":     "Alger",
		"to":       "Marseille",
		"capacity": 1000,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = mediator.do(t, http.MethodPost, "/containers", gin.H{
		"name":     "Box A",
		"from":     "Alger",
		"to":       "Marseille",
		"capacity": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = mediator.do(t, http.MethodGet, "/containers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
