package middleware

import (
	"compress/gzip"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

type CompressConfig struct {
	Level     int
	Blacklist []string
}

func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		Level: gzip.DefaultCompression,
		Blacklist: []string{
			"/api/health",
			"/metrics",
		},
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.gz.Write([]byte(s))
}

// Compress gzips responses for clients that ask for it. Writers are pooled;
// allocating a fresh gzip state per request shows up under load.
func Compress(config CompressConfig) gin.HandlerFunc {
	if _, err := gzip.NewWriterLevel(nil, config.Level); err != nil {
		config.Level = gzip.DefaultCompression
	}

	pool := sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(nil, config.Level)
			return gz
		},
	}

	return func(c *gin.Context) {
		if skipCompression(c, config.Blacklist) {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		gz.Reset(c.Writer)
		defer func() {
			gz.Close()
			pool.Put(gz)
		}()

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		c.Writer = &gzipWriter{ResponseWriter: c.Writer, gz: gz}

		c.Next()
	}
}

func skipCompression(c *gin.Context, blacklist []string) bool {
	for _, prefix := range blacklist {
		if strings.HasPrefix(c.Request.URL.Path, prefix) {
			return true
		}
	}
	return !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip")
}
