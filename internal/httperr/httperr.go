package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, message, details string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error:   message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, message, details string) {
	Write(c, http.StatusBadRequest, message, details)
}

func NotFound(c *gin.Context, message, details string) {
	Write(c, http.StatusNotFound, message, details)
}

func Internal(c *gin.Context, message, details string) {
	Write(c, http.StatusInternalServerError, message, details)
}

func Unauthorized(c *gin.Context, message, details string) {
	Write(c, http.StatusUnauthorized, message, details)
}
