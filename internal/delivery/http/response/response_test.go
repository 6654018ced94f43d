package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(string(domain.KeyRequestID), "req-1")

	response.Error(c, http.StatusNotFound, "Profile with ID x not found")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(404), body["statusCode"])
	assert.Equal(t, "Profile with ID x not found", body["message"])
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "req-1", body["requestId"])
}

func TestErrorWithMessageList(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusBadRequest, []string{"email must be an email"})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []interface{}{"email must be an email"}, body["message"])
	assert.NotContains(t, body, "requestId")
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.JSON(c, http.StatusCreated, map[string]string{"id": "p-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"p-1"}`, w.Body.String())
}
