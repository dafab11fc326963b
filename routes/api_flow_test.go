package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhive/taskhive/middleware"
	"taskhive/taskhive/services"
	"taskhive/taskhive/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupAPIRouter wires the full router the way cmd/main.go does, backed by an
// in-memory database.
func setupAPIRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()

	db, close := testutils.SetupTestDB()

	authService := services.NewAuthService(db, "test-secret", 3600)
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)

	router := gin.New()
	RegisterHealthRoutes(router)
	RegisterAuthRoutes(router, authService)

	taskGroup := router.Group("/tasks")
	taskGroup.Use(middleware.AuthMiddleware(authService, userService))
	RegisterTaskRoutes(taskGroup, taskService)

	return router, close
}

func doAPIRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTaskLifecycleFlow(t *testing.T) {
	router, close := setupAPIRouter(t)
	defer close()

	// Health probe
	w := doAPIRequest(router, "GET", "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Register and log in
	w = doAPIRequest(router, "POST", "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doAPIRequest(router, "POST", "/auth/login", `{"email":"alice@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["access_token"].(string)
	assert.NotEmpty(t, token)

	// Create a task
	w = doAPIRequest(router, "POST", "/tasks", `{"title":"T1"}`, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "T1", created["title"])
	assert.Equal(t, "TODO", created["status"])
	taskID, _ := created["id"].(string)
	assert.NotEmpty(t, taskID)

	// List: one task, status TODO
	w = doAPIRequest(router, "GET", "/tasks", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody(t, w)
	data := listed["data"].([]interface{})
	assert.Len(t, data, 1)
	meta := listed["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])

	// Update status to DONE
	w = doAPIRequest(router, "PATCH", "/tasks/"+taskID, `{"status":"DONE"}`, token)
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, taskID, updated["id"])
	assert.Equal(t, "DONE", updated["status"])

	// Delete
	w = doAPIRequest(router, "DELETE", "/tasks/"+taskID, "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Task deleted")

	// List again: empty, but still one reported page
	w = doAPIRequest(router, "GET", "/tasks", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	listed = decodeBody(t, w)
	assert.Len(t, listed["data"], 0)
	meta = listed["meta"].(map[string]interface{})
	assert.Equal(t, float64(0), meta["total"])
	assert.Equal(t, float64(1), meta["last_page"])
}

func TestCrossUserIsolation(t *testing.T) {
	router, close := setupAPIRouter(t)
	defer close()

	register := func(name, email string) string {
		w := doAPIRequest(router, "POST", "/auth/register", `{"name":"`+name+`","email":"`+email+`","password":"password123"}`, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		w = doAPIRequest(router, "POST", "/auth/login", `{"email":"`+email+`","password":"password123"}`, "")
		assert.Equal(t, http.StatusOK, w.Code)
		token, _ := decodeBody(t, w)["access_token"].(string)
		return token
	}

	aliceToken := register("Alice", "alice@example.com")
	bobToken := register("Bob", "bob@example.com")

	w := doAPIRequest(router, "POST", "/tasks", `{"title":"Alice's task"}`, aliceToken)
	assert.Equal(t, http.StatusCreated, w.Code)
	taskID, _ := decodeBody(t, w)["id"].(string)

	// Bob cannot see, update, or effectively delete Alice's task
	w = doAPIRequest(router, "GET", "/tasks", "", bobToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 0)

	w = doAPIRequest(router, "PATCH", "/tasks/"+taskID, `{"status":"DONE"}`, bobToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doAPIRequest(router, "DELETE", "/tasks/"+taskID, "", bobToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Alice's task is still there, untouched
	w = doAPIRequest(router, "GET", "/tasks", "", aliceToken)
	assert.Equal(t, http.StatusOK, w.Code)
	listed := decodeBody(t, w)
	data := listed["data"].([]interface{})
	assert.Len(t, data, 1)
	task := data[0].(map[string]interface{})
	assert.Equal(t, "TODO", task["status"])
}

func TestDuplicateRegistration(t *testing.T) {
	router, close := setupAPIRouter(t)
	defer close()

	w := doAPIRequest(router, "POST", "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doAPIRequest(router, "POST", "/auth/register", `{"name":"Mallory","email":"alice@example.com","password":"otherpass"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnknownFieldsRejected(t *testing.T) {
	router, close := setupAPIRouter(t)
	defer close()

	w := doAPIRequest(router, "POST", "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"password123","role":"admin"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasksRequireAuthentication(t *testing.T) {
	router, close := setupAPIRouter(t)
	defer close()

	w := doAPIRequest(router, "GET", "/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doAPIRequest(router, "POST", "/tasks", `{"title":"T1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doAPIRequest(router, "POST", "/tasks", `{"title":"T1"}`, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
