// Package handler contains the HTTP handlers. This is the only layer that
// translates service errors into HTTP responses.
package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/net/resp"
)

// bindJSON binds the request body into v and converts binding failures into
// a bad request exception carrying per-field messages.
func bindJSON(c *gin.Context, v any) *resp.Exception {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fieldErrorMessage(fe)
		}
		return resp.BadRequest(ecode.Text(ecode.RequestErr), fields)
	}

	return resp.BadRequest("invalid request body")
}

// fieldErrorMessage renders a single validation failure.
func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return ecode.FieldIsRequired(field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return ecode.FieldIsInvalid(field)
	default:
		return ecode.FieldIsInvalid(field)
	}
}
