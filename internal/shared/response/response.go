package response

import (
	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of successful writes.
type MessageResponse struct {
	Message string `json:"message"`
	ID      uint64 `json:"id,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

func Created(c *gin.Context, status int, message string, id uint64) {
	c.JSON(status, MessageResponse{Message: message, ID: id})
}

func Error(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, ErrorResponse{Error: message, Fields: fields})
}
