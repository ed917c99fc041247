// Package httputil collects the request plumbing every handler repeats:
// typed parameter parsing that answers 400 on bad input, and csv streaming
// for report downloads.
package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
	})
}

// UUIDParam parses a path parameter as a UUID. On failure it writes the 400
// itself and returns false; the handler just returns.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// UUIDQuery parses an optional UUID query parameter. An absent parameter
// yields (nil, true); a malformed one writes the 400 and yields false.
func UUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &id, true
}

// RequiredQuery fetches a query parameter that must be present.
func RequiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		badRequest(c, name+" query parameter is required")
		return "", false
	}
	return value, true
}
