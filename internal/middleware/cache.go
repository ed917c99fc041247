package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CacheConfig struct {
	MaxAge         int
	Private        bool
	NoStore        bool
	NoCache        bool
	MustRevalidate bool
	Vary           []string
}

// DefaultCacheConfig suits the report endpoints: a minute of client-side
// caching, revalidated after that.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge:         60,
		Private:        true,
		MustRevalidate: true,
		Vary:           []string{"Accept"},
	}
}

// Cache sets Cache-Control on GET responses; mutations are always no-store.
// The directive string never varies per request, so it is rendered once.
func Cache(config CacheConfig) gin.HandlerFunc {
	cacheControl := renderCacheControl(config)
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", cacheControl)
		if vary != "" {
			c.Header("Vary", vary)
		}
		c.Next()
	}
}

func renderCacheControl(config CacheConfig) string {
	directives := make([]string, 0, 4)

	if config.Private {
		directives = append(directives, "private")
	} else {
		directives = append(directives, "public")
	}

	switch {
	case config.NoStore:
		directives = append(directives, "no-store")
	case config.MaxAge > 0:
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}

	if config.NoCache {
		directives = append(directives, "no-cache")
	}
	if config.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}

	return strings.Join(directives, ", ")
}
