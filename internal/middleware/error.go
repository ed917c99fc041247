package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

// ErrorResponse is the middleware-level error body. Handlers have their own
// envelope; everything aborted before or after them answers with this one,
// carrying the request id so a client report can be matched to a log line.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    status,
		Message: message,
		TraceID: traceID(c),
	})
}

// ErrorHandler drains c.Errors after the handler chain ran. Every attached
// error is logged; if nothing wrote a response yet, the last error decides
// the status through its AppError code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		rid := traceID(c)
		for _, ginErr := range c.Errors {
			log.Error().
				Err(ginErr.Err).
				Str("request_id", rid).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Interface("meta", ginErr.Meta).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		appErr := apperrors.FromError(c.Errors.Last().Err)
		abortWithError(c, appErr.Code.HTTPStatus(), appErr.Message)
	}
}
