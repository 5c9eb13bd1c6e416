package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"automation-coach/internal/shared/auth"
	"automation-coach/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Auth(), Logging())
	router.POST("/api/v1/admin/tasks/:id/complete", func(c *gin.Context) {
		c.Set(TaskIDKey, c.Param("id"))
		c.Set(StatusTransitionKey, "commented->completed")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tasks/task-1/complete", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, auth.RoleCoach))
	req.Header.Set("X-Request-Id", "req-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	want := map[string]any{
		"msg":               "request.complete",
		"request_id":        "req-1",
		"user_id":           "google:1",
		"task_id":           "task-1",
		"status_transition": "commented->completed",
		"route":             "/api/v1/admin/tasks/:id/complete",
	}
	for key, val := range want {
		if payload[key] != val {
			t.Fatalf("field %s: expected %v, got %v", key, val, payload[key])
		}
	}
	if payload["status"].(float64) != http.StatusOK {
		t.Fatalf("unexpected status %v", payload["status"])
	}
	if _, ok := payload["duration_ms"]; !ok {
		t.Fatalf("missing duration_ms")
	}
}

func TestLoggingSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logging())
	router.OPTIONS("/api/v1/tasks", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected no log for preflight, got %s", buf.String())
	}
}
