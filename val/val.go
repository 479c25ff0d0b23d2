// Package val validates command and config structs with go-playground/validator
// and turns the failures into readable, field-keyed messages.
package val

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // shared validator instance, it caches struct metadata
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(getTagName)
		registerBuiltins(validate)
	})
	return validate
}

// RegisterValidation adds a custom validation tag.
// desc is the message reported when the rule fails; it may contain one %s for the tag parameter.
// It should be called during startup, before any validation runs concurrently.
func RegisterValidation(tag string, fn validator.Func, desc string) error {
	if err := getValidator().RegisterValidation(tag, fn); err != nil {
		return err
	}
	customDescriptions.Store(tag, desc)
	return nil
}

// getTagName names a field after its json, query or params tag, falling back to the Go name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "params"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
