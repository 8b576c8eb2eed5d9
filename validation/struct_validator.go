package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/consoleapi/httpclient"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct, or a slice of structs, using struct tags like
// `validate:"required,email,max=255"`.
func Validate(s any) error {
	v := getValidator()

	var err error
	if rv := reflect.ValueOf(s); rv.Kind() == reflect.Slice {
		err = v.Var(s, "dive")
	} else {
		err = v.Struct(s)
	}
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return httpclient.NewValidationError("validation failed: " + err.Error())
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldName(e),
			Message: formatValidationError(e),
		})
	}
	return newError(fieldErrors)
}

// fieldName drops the top-level struct name from the namespace so nested
// and slice fields read "[0].email" or "limits.storage".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexAny(ns, ".["); i > 0 {
		ns = strings.TrimPrefix(ns[i:], ".")
	}
	if ns == "" {
		return e.Field()
	}
	return ns
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
