package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bpauto/internal/superflow"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	validate.RegisterValidation("superflow", func(fl validator.FieldLevel) bool {
		_, err := superflow.Lookup(fl.Field().String())
		return err == nil
	})
}

// Validate checks the config before any generation happens
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	payloads := make(map[string]bool, len(c.Payloads))
	for _, p := range c.Payloads {
		if payloads[p.FileName] {
			return fmt.Errorf("Payloads: duplicate file name %q", p.FileName)
		}
		payloads[p.FileName] = true
	}

	seen := make(map[string]bool, len(c.Superflows))
	for _, sf := range c.Superflows {
		if seen[sf.Name] {
			return fmt.Errorf("Superflows: duplicate name %q", sf.Name)
		}
		seen[sf.Name] = true

		tmpl, _ := superflow.Lookup(sf.Template)
		if tmpl.NeedsFile() && sf.File == "" {
			return fmt.Errorf("Superflows: %q uses template %s which needs a File", sf.Name, sf.Template)
		}
	}
	return nil
}

// formatValidationError reports the first validation failure with its YAML path
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "ipv4":
			return fmt.Errorf("%s: %q is not an IPv4 address", field, e.Value())
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, e.Param())
		case "superflow":
			return fmt.Errorf("%s: unknown superflow template %q", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
