package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error responds with the status the error's code maps to. Errors that are
// not AppErrors become opaque 500s so internals never leak to clients.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.JSON(appErr.Code.HTTPStatus(), NewErrorResponse(appErr.Message))
}
