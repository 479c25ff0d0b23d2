package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const tagNotBlank = "notblank"

func registerBuiltins(v *validator.Validate) {
	_ = v.RegisterValidation(tagNotBlank, isNotBlank)
}

// isNotBlank rejects strings made only of whitespace, and empty slices and maps.
func isNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !field.IsNil()
	default:
		return !field.IsZero()
	}
}
