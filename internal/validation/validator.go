package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"edu-quiz/internal/domain"

	"github.com/go-playground/validator/v10"
)

const notBlankTag = "notblank"

// Validator validates request bodies through struct tags and reports
// failures as domain.ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(notBlankTag, notBlank)

	return &Validator{validate: v}
}

// Struct validates s. A nil return means s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required", notBlankTag:
		return domain.NewMissingFieldError(field)
	case "min", "max":
		e := domain.NewInvalidFormatError(field, fe.Value())
		e.Code = domain.CodeOutOfRange
		e.Message = fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
		return e
	case "oneof":
		e := domain.NewInvalidFormatError(field, fe.Value())
		e.Message = fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
		return e
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// fieldPath drops the top-level struct name from the namespace, so
// "CreateModuleRequest.lessons[0].title" becomes "lessons[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String {
		return strings.TrimSpace(fl.Field().String()) != ""
	}
	return true
}
