package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Details   any       `json:"details,omitempty"`
}

// Error writes the failure envelope and aborts the chain. code is a stable
// machine-readable kind such as DUPLICATE_EMAIL.
func Error(ctx *gin.Context, status int, code, message string, details any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := APIResponse[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     code,
		Details:   details,
	}
	ctx.AbortWithStatusJSON(status, body)
	return body
}
