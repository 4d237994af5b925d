package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"copy-generator/internal/diagnostic"
)

var (
	identPattern     = regexp.MustCompile(`^@?[A-Za-z_][A-Za-z0-9_]*$`)
	qualifiedPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator with the manifest tags
// registered. validator.Validate is safe for concurrent use.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		mustRegister(validate, "ident", func(fl validator.FieldLevel) bool {
			return identPattern.MatchString(fl.Field().String())
		})
		mustRegister(validate, "qualified", func(fl validator.FieldLevel) bool {
			return qualifiedPattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks the structure of a manifest file: required fields,
// identifier syntax and enumerated values. Cross-type checks happen while
// building the type graph.
func Validate(mf *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("manifest_is_nil", "manifest is nil", "", "")
		return res
	}

	err := structValidator().Struct(mf)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			res.AddError("invalid_manifest", err.Error(), "", "")
		}

		for _, fe := range verrs {
			res.AddError("invalid_field", describeFieldError(fe), "", fieldPath(fe))
		}
	}

	res.WithSource(mf.Source)

	return res
}

// fieldPath strips the root struct name from the validator namespace,
// e.g. "File.types[0].name" -> "types[0].name".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}

	return path
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "ident":
		return fmt.Sprintf("%s %q is not a valid identifier", fe.Field(), fe.Value())
	case "qualified":
		return fmt.Sprintf("%s %q is not a valid namespace", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of: %s", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
