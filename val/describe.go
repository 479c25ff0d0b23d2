package val

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // tag descriptions registered through RegisterValidation
var customDescriptions sync.Map

//nolint:gochecknoglobals // static lookup tables
var (
	plainDescriptions = map[string]string{
		"required":    "This field is required",
		tagNotBlank:   "Must not be blank",
		"email":       "Invalid email format",
		"alpha":       "Must contain only alphabetic characters",
		"alphanum":    "Must contain only alphanumeric characters",
		"numeric":     "Must be a valid number",
		"url":         "Must be a valid URL",
		"uri":         "Must be a valid URI",
		"uuid":        "Must be a valid UUID",
		"uuid4":       "Must be a valid UUID v4",
		"json":        "Must be valid JSON",
		"base64":      "Must be valid base64",
		"hostname":    "Must be a valid hostname",
		"ip":          "Must be a valid IP address",
		"ipv4":        "Must be a valid IPv4 address",
		"ipv6":        "Must be a valid IPv6 address",
		"latitude":    "Must be a valid latitude",
		"longitude":   "Must be a valid longitude",
		"hexcolor":    "Must be a valid hex color",
		"isbn":        "Must be a valid ISBN",
		"credit_card": "Must be a valid credit card number",
	}

	paramDescriptions = map[string]string{
		"gte":         "Must be greater than or equal to %s",
		"lte":         "Must be less than or equal to %s",
		"gt":          "Must be greater than %s",
		"lt":          "Must be less than %s",
		"eqfield":     "Must be equal to %s",
		"nefield":     "Must not be equal to %s",
		"gtfield":     "Must be greater than %s",
		"ltfield":     "Must be less than %s",
		"containsany": "Must contain at least one of: %s",
		"excludes":    "Must not contain: %s",
		"excludesall": "Must not contain any of: %s",
		"startswith":  "Must start with: %s",
		"endswith":    "Must end with: %s",
		"datetime":    "Must be a valid datetime in format: %s",
	}

	// sizeDescriptions depend on whether the field is a string or a collection/number.
	sizeDescriptions = map[string][2]string{
		"min": {"Must be at least %s characters", "Must be at least %s"},
		"max": {"Must be at most %s characters", "Must be at most %s"},
		"len": {"Must be exactly %s characters", "Must have exactly %s items"},
	}
)

func describe(fieldErr validator.FieldError) string {
	tag, param := fieldErr.Tag(), fieldErr.Param()

	if desc, ok := plainDescriptions[tag]; ok {
		return desc
	}
	if format, ok := paramDescriptions[tag]; ok {
		return fmt.Sprintf(format, param)
	}
	if formats, ok := sizeDescriptions[tag]; ok {
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf(formats[0], param)
		}
		return fmt.Sprintf(formats[1], param)
	}
	if tag == "oneof" {
		return "Must be one of: " + strings.ReplaceAll(param, " ", ", ")
	}
	if v, ok := customDescriptions.Load(tag); ok {
		desc, _ := v.(string)
		if strings.Contains(desc, "%s") {
			return fmt.Sprintf(desc, param)
		}
		return desc
	}
	return "Failed validation: " + tag
}
