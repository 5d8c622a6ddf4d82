// Package rules holds the static validation patterns shared by the checkout
// and contact forms, registered as custom validator tags.
package rules

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// NamePattern: letters including accented ones, spaces, hyphens and
	// apostrophes, 2 to 50 characters, starting with a letter.
	NamePattern = regexp.MustCompile(`^\p{L}[\p{L}' -]{1,49}$`)

	// PhonePattern: French numbers, optional +33 prefix, digits grouped by
	// pairs with optional separators. e.g. "06 12 34 56 78", "+33612345678".
	PhonePattern = regexp.MustCompile(`^(?:\+33\s?|0)[1-9](?:[ .-]?\d{2}){4}$`)
)

// Messages maps rule tags to the inline message surfaced to the user.
var Messages = map[string]string{
	"customer_name": "must contain only letters, spaces, hyphens or apostrophes (2-50 characters)",
	"phone_fr":      "must be a valid French phone number",
	"required":      "is required",
	"email":         "must be a valid email address",
}

// Register installs the custom tags on a validator instance. Every handler
// that validates customer input must go through a validator configured here.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("customer_name", validateName); err != nil {
		return err
	}

	return v.RegisterValidation("phone_fr", validatePhone)
}

func validateName(fl validator.FieldLevel) bool {
	return NamePattern.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return PhonePattern.MatchString(fl.Field().String())
}
