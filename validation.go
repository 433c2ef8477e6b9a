package cashbill

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is the struct validator shared by the package, it caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name, which is also the name users know them by.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Money is validated by value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(Money); ok {
			return m.value.InexactFloat64()
		}
		return nil
	}, Money{})
	// Text printed on bills must not add lines of its own.
	if err := v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
	}); err != nil {
		panic(err)
	}
	return v
}

// validateStruct validates s and converts failures into a *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), reason(fe))
	}
	return verr.orNil()
}

// reason turns a validator tag into a human readable reason.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		if fe.Kind() == reflect.Slice {
			return "must have at least one entry"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		return "must not be negative"
	case "singleline":
		return "must not contain line breaks or control characters"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
