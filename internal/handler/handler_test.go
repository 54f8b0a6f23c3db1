package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"buddyremind/internal/config"
	"buddyremind/internal/middleware"
	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "buddyremind.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Buddy{}, &model.Reminder{}, &model.UserStats{},
	))

	smtp := config.SMTPConfig{}
	stats := service.NewStatsService(db)
	auth := service.NewAuthService(db, stats, service.NewMailer(smtp), smtp)
	reminders := service.NewReminderService(db, stats)
	buddies := service.NewBuddyService(db)

	authH := NewAuthHandler(auth)
	reminderH := NewReminderHandler(reminders)
	buddyH := NewBuddyHandler(buddies)
	userH := NewUserHandler(stats)

	r := gin.New()
	r.Use(middleware.RequestID())

	ag := r.Group("/api/auth")
	ag.POST("/register", authH.Register)
	ag.POST("/login", authH.Login)
	ag.GET("/me", middleware.JWTAuth(), authH.Me)

	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/reminders", reminderH.List)
	api.POST("/reminders", reminderH.Create)
	api.GET("/reminders/analytics", reminderH.Analytics)
	api.GET("/reminders/:id", reminderH.Get)
	api.PUT("/reminders/:id", reminderH.Update)
	api.DELETE("/reminders/:id", reminderH.Delete)
	api.PUT("/reminders/:id/complete", reminderH.ToggleComplete)
	api.PUT("/reminders/:id/snooze", reminderH.Snooze)
	api.GET("/buddies", buddyH.List)
	api.POST("/buddies", buddyH.Create)
	api.GET("/users/stats", userH.Stats)

	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Pat", "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	e := decode(t, w)
	require.True(t, e.Success)
	require.NotEmpty(t, e.Token)
	return e.Token
}

func TestRegisterAndMe(t *testing.T) {
	r := testRouter(t)
	token := registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &user))
	assert.Equal(t, "pat@example.com", user.Email)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	r := testRouter(t)
	registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Pat", "email": "pat@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	e := decode(t, w)
	assert.False(t, e.Success)
	assert.Equal(t, "email already in use", e.Message)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r := testRouter(t)
	w := do(t, r, http.MethodGet, "/api/reminders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestReminderCRUDAndEnvelope(t *testing.T) {
	r := testRouter(t)
	token := registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodPost, "/api/reminders", token, gin.H{
		"title": "walk the dog", "due_date": time.Now().Add(time.Hour).Format(time.RFC3339),
		"tags": []string{"home"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Reminder
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	require.NotZero(t, created.ID)

	w = do(t, r, http.MethodGet, "/api/reminders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	e := decode(t, w)
	assert.True(t, e.Success)
	assert.Equal(t, 1, e.Count)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/reminders/%d/complete", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var done model.Reminder
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &done))
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/reminders/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/reminders/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonOwnerGetsForbiddenWithoutContent(t *testing.T) {
	r := testRouter(t)
	owner := registerUser(t, r, "owner@example.com")
	other := registerUser(t, r, "other@example.com")

	w := do(t, r, http.MethodPost, "/api/reminders", owner, gin.H{
		"title": "private", "due_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Reminder
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/reminders/%d", created.ID), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	e := decode(t, w)
	assert.False(t, e.Success)
	assert.NotContains(t, w.Body.String(), "private", "record content never leaks")
}

func TestSnoozeValidation(t *testing.T) {
	r := testRouter(t)
	token := registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodPost, "/api/reminders", token, gin.H{
		"title": "call mom", "due_date": time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Reminder
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/reminders/%d/snooze", created.ID), token, gin.H{
		"snooze_duration": "whenever",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/reminders/%d/snooze", created.ID), token, gin.H{
		"snooze_duration": "tomorrow",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var snoozed model.Reminder
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &snoozed))
	assert.Equal(t, 9, snoozed.DueDate.Hour())
}

func TestAnalyticsEndpoint(t *testing.T) {
	r := testRouter(t)
	token := registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodGet, "/api/reminders/analytics?period=7days", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sum model.AnalyticsSummary
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sum))
	assert.Equal(t, "7days", sum.Period)

	w = do(t, r, http.MethodGet, "/api/reminders/analytics?period=forever", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserStatsEndpoint(t *testing.T) {
	r := testRouter(t)
	token := registerUser(t, r, "pat@example.com")

	w := do(t, r, http.MethodGet, "/api/users/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var st model.UserStats
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &st))
	assert.Equal(t, 50, st.Behavior.Data().ProcrastinationIndex)
}

func TestRequestIDHeader(t *testing.T) {
	r := testRouter(t)
	w := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "x@y.z", "password": "nope"})
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
