package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"maintenance-system/internal/lifecycle"
)

var phoneRegexp = regexp.MustCompile(`^\+?[0-9 .-]{6,20}$`)

// RegisterCustomValidators binds the domain enum rules to validator tags so
// DTOs can declare them inline.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		_, err := lifecycle.ParseStatus(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("stop_type", func(fl validator.FieldLevel) bool {
		_, err := lifecycle.ParseStopType(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("problem_type", func(fl validator.FieldLevel) bool {
		_, err := lifecycle.ParseProblemType(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		_, err := lifecycle.ParsePriority(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}
