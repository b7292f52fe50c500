package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for non-negative decimals (prices)
	validate.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
			return !d.IsNegative()
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// FieldErrors converts validation failures into the per-field error map
// returned to clients: {"field": ["message", ...]}.
func FieldErrors(errs []*ErrorResponse) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		field := e.FailedField
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		field = strings.ToLower(field)
		out[field] = append(out[field], messageFor(e))
	}
	return out
}

func messageFor(e *ErrorResponse) string {
	switch e.Tag {
	case "required":
		return "This field is required."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", e.Value)
	case "dgte0":
		return "Ensure this value is a non-negative decimal."
	case "email":
		return "Enter a valid email address."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", e.Tag)
	}
}
