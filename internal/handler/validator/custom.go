package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Rate identifiers are short slugs; case and surrounding space are
	// normalized later, so both are tolerated here.
	rateIDRegex = regexp.MustCompile(`^\s*[A-Za-z0-9][A-Za-z0-9_-]{0,63}\s*$`)
	phoneRegex  = regexp.MustCompile(`^\+?[0-9 ().-]+$`)
)

func rateIDValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return rateIDRegex.MatchString(val)
}

func phoneValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	digits := 0
	for _, r := range val {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && phoneRegex.MatchString(val)
}
