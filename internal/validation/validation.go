package validation

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Validator checks view models and turns failures into per-field messages
// that forms can display next to the offending input.
type Validator struct {
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func New() *Validator {
	return &Validator{
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors validates i and returns the failures keyed by field path
// (for example "OrderLines[0].Quantity"). A nil map means i is valid.
func (v *Validator) FieldErrors(i interface{}) map[string]string {
	err := v.Validate(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fieldPath(fe.StructNamespace())] = message(fe)
	}

	return fieldErrors
}

// MarkupErrors reports every string field of i, descending into nested
// structs and slices of structs, that a strict sanitizer would alter. Values
// are never changed; the offending fields come back keyed like FieldErrors.
func (v *Validator) MarkupErrors(i interface{}) map[string]string {
	rv := reflect.ValueOf(i)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	fieldErrors := make(map[string]string)
	v.collectMarkup(rv, "", fieldErrors)
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (v *Validator) collectMarkup(rv reflect.Value, path string, fieldErrors map[string]string) {
	switch rv.Kind() {
	case reflect.String:
		if v.containsMarkup(rv.String()) {
			fieldErrors[path] = "must not contain markup such as <tags>"
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if path != "" {
				name = path + "." + name
			}
			v.collectMarkup(rv.Field(i), name, fieldErrors)
		}
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			v.collectMarkup(rv.Index(i), fmt.Sprintf("%s[%d]", path, i), fieldErrors)
		}
	}
}

// containsMarkup compares against the unescaped policy output so that plain
// ampersands and quotes are not mistaken for markup.
func (v *Validator) containsMarkup(s string) bool {
	return html.UnescapeString(v.sanitizer.Sanitize(s)) != s
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
