package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationConfig struct {
	CustomValidators    map[string]validator.Func
	CustomErrorMessages map[string]string
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		CustomErrorMessages: map[string]string{
			"required": "Field is required",
			"email":    "Invalid email format",
			"min":      "Value is too short",
			"max":      "Value is too long",
			"oneof":    "Value is not one of the allowed options",
			"datetime": "Invalid date or time format",
		},
	}
}

// Validation teaches the binding validator to report json field names and
// answers binding failures attached via c.Error with field-level 400s.
// Registration on gin's shared validator happens once, at setup.
func Validation(config ValidationConfig) gin.HandlerFunc {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configureValidator(v, config.CustomValidators)
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		fieldErrors := collectFieldErrors(c.Errors, config.CustomErrorMessages)
		if len(fieldErrors) == 0 {
			return
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"errors": fieldErrors,
		})
	}
}

func configureValidator(v *validator.Validate, custom map[string]validator.Func) {
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

func collectFieldErrors(ginErrors []*gin.Error, messages map[string]string) []ValidationError {
	var out []ValidationError
	for _, ginErr := range ginErrors {
		verrs, ok := ginErr.Err.(validator.ValidationErrors)
		if !ok {
			continue
		}
		for _, fe := range verrs {
			msg := messages[fe.Tag()]
			if msg == "" {
				msg = fe.Error()
			}
			out = append(out, ValidationError{Field: fe.Field(), Message: msg})
		}
	}
	return out
}
