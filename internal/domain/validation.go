package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const msgBlank = "can't be blank"

var validate = NewValidator()

// NewValidator returns a validator that reports fields by their json name and
// understands the notblank tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// notblank ships with the non-standard set and must be registered explicitly.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateStruct runs the validate tags of s. Tag failures come back as a
// *ValidationError; any other error means s cannot be validated at all.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		code, msg := describeTag(fe)
		ve.Add(fe.Field(), code, msg)
	}
	return ve
}

func describeTag(fe validator.FieldError) (code, message string) {
	switch fe.Tag() {
	case "required", "notblank":
		return CodeBlank, msgBlank
	case "min":
		return CodeInvalid, "must be at least " + fe.Param()
	case "max":
		return CodeInvalid, "must be at most " + fe.Param()
	case "oneof":
		return CodeInvalid, "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "uuid":
		return CodeInvalid, "is not a valid id"
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return CodeInvalid, "must be a date (YYYY-MM-DD)"
		}
		return CodeInvalid, "must match " + fe.Param()
	}
	return CodeInvalid, "is invalid"
}
