package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resumegen/internal/shared/telemetry"
)

func TestErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	defer telemetry.SetOutput(&logs)()

	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "validation_error", "Job offer text is required", nil)
	})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false || body["error"] != "Job offer text is required" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["details"]; ok {
		t.Fatalf("nil details must be omitted")
	}
	if !bytes.Contains(logs.Bytes(), []byte(`"msg":"http.error"`)) {
		t.Fatalf("expected http.error log line, got %s", logs.String())
	}
}

func TestOKShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) { OK(c, gin.H{"n": 1}) })
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if resp.Body.String() != `{"data":{"n":1},"success":true}` && resp.Body.String() != `{"success":true,"data":{"n":1}}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
