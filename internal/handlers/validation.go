package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the shared validator instance. Field names in error
// payloads use the json tag, not the Go field name.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validateStruct runs the declarative tag constraints and converts any
// failures into the service-layer ValidationError, one field message per
// violated constraint.
func validateStruct(validate *validator.Validate, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrors := make([]services.FieldMessage, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, services.FieldMessage{
			FieldName: e.Field(),
			Message:   constraintMessage(e),
		})
	}
	return &services.ValidationError{Errors: fieldErrors}
}

func constraintMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Field is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must have at least %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must have at most %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "email":
		return "Please provide a valid email"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "url":
		return "Must be a valid URL"
	}
	return fmt.Sprintf("Failed on the '%s' constraint", e.Tag())
}
