package httputil

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

// WriteCSV streams rows as a csv attachment. rows must be a pointer to a
// slice of structs carrying csv tags.
func WriteCSV(c *gin.Context, filename string, rows interface{}) error {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	return gocsv.Marshal(rows, c.Writer)
}
