package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/domain"
)

// ErrorResponse is the body of every failed request. Message is a string, or a
// list of strings for validation failures.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    interface{} `json:"message"`
	Error      string      `json:"error"`
	RequestID  string      `json:"requestId,omitempty"`
}

// JSON sends data as the raw response body
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message interface{}) {
	c.JSON(code, ErrorResponse{
		StatusCode: code,
		Message:    message,
		Error:      http.StatusText(code),
		RequestID:  RequestID(c),
	})
}

// RequestID returns the id assigned by the RequestID middleware, if any.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string)
	return idStr
}
