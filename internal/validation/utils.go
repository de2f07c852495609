// Package validation binds request bodies and turns validation failures
// into field-level API errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/errs"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field names in errors are the
// JSON names of the struct fields.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// PathOnly marks payloads that are filled from path parameters alone.
// BindAndValidate leaves the request body unread for them, so a handler
// can still decode the body into a different payload afterwards.
type PathOnly interface {
	PathOnly()
}

// BindAndValidate decodes the request body into payload and validates it.
//
// Type mismatches ("latitude": "abc") are reported against the offending
// field together with any rule failures on the remaining fields. Other
// decode failures are a plain 400 with a message.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if _, ok := payload.(PathOnly); ok {
		if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
			return bindError(err)
		}
		return checkPayload(payload)
	}

	if err := c.Bind(payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			fieldErrors := []errs.FieldError{{
				Field: typeErr.Field,
				Error: typeMessage(typeErr.Type),
			}}
			// The decoder keeps going after a type error, so the rest of
			// the payload is populated and can still be checked.
			_, rest := validateStruct(payload)
			for _, fe := range rest {
				if fe.Field != typeErr.Field {
					fieldErrors = append(fieldErrors, fe)
				}
			}
			return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
		}
		return bindError(err)
	}

	return checkPayload(payload)
}

func checkPayload(payload Validatable) error {
	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}
	return nil
}

func bindError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewBadRequestError(fmt.Sprintf("JSON parse error at offset %d", syntaxErr.Offset), true, nil, nil, nil)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code != http.StatusBadRequest {
			return he
		}
		if msg, ok := he.Message.(string); ok {
			return errs.NewBadRequestError(msg, false, nil, nil, nil)
		}
	}

	return errs.NewBadRequestError("Malformed request body", false, nil, nil, nil)
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "has an invalid type"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	case reflect.Bool:
		return "must be a boolean"
	default:
		return "has an invalid type"
	}
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "non_field_errors", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		// ActualTag resolves aliases to the rule that failed.
		switch err.ActualTag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}

	return "Validation failed", fieldErrors
}
