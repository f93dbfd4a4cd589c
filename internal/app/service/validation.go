package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"workout_api/internal/common"

	"github.com/go-playground/validator/v10"
)

// bcrypt rejects inputs longer than this many bytes.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// max=72 counts runes; bcrypt's limit is in bytes.
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return v
}

// validateStruct runs the struct's validate tags and reports failures as
// field errors keyed by JSON name.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}
	var vErr common.ValidationError
	for _, fe := range fieldErrs {
		vErr.Add(fe.Field(), validationMessage(fe))
	}
	return vErr.OrNil()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "bcryptmax":
		return fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)
	default:
		return "is invalid"
	}
}
