package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared request-DTO validator
var validate = validator.New()

// validationMessage flattens validator errors into one client-facing line
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, len(errs))
		for i, fe := range errs {
			parts[i] = fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
		}
		return strings.Join(parts, "; ")
	}
	return "Invalid request body"
}
