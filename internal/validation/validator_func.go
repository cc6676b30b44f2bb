package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	phoneRegex = `^\+?[1-9]\d{1,14}$`
)

const (
	PhoneTag  = "phone"
	FutureTag = "future"
)

var phonePattern = regexp.MustCompile(phoneRegex)

func ValidatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// validateFuture reports whether the field is a time strictly after now().
func validateFuture(now func() time.Time) validator.Func {
	return func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(now())
	}
}
