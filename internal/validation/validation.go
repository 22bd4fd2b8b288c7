package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New builds the request validator with the domain's custom rules
// registered. RegisterValidation only errors on an empty tag name, so the
// panics here can only fire on a programming mistake at startup.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("userpassword", userPassword); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("alphaspace", alphaSpace); err != nil {
		panic(err)
	}

	return v
}

// userPassword enforces the account password policy: at least 8 characters
// with one lowercase letter and one digit. Strength is checked at
// registration; login reuses the rule as a cheap format gate.
func userPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLower && hasDigit
}

// alphaSpace accepts letters and spaces only, for role names.
func alphaSpace(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}

	for _, r := range value {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}

	return true
}

// FieldFailed reports whether err contains a validation failure for the
// named struct field.
func FieldFailed(err error, field string) bool {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err != nil
	}

	for _, fe := range errs {
		if fe.Field() == field {
			return true
		}
	}

	return false
}
