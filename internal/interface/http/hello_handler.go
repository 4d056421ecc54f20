package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const helloMessage = "Hello Runner's Hi"

// Hello GET /hello, a liveness probe with no domain logic.
func Hello(c *gin.Context) {
	c.String(http.StatusOK, helloMessage)
}
