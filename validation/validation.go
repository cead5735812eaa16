// Package validation holds the client-side form checks run before a request
// leaves the process. Each rule returns a human-readable message when the
// value violates it and "" when the value passes; callers collect the
// non-empty messages and show them next to the form field.
//
// These checks exist for fast feedback only. The backend re-validates
// everything, so a bypassed rule is a UX bug, not a security hole.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	digitRE       = regexp.MustCompile(`\d`)
	specialRE     = regexp.MustCompile(`[^\p{L}0-9_ -]`)
	emailRE       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowercaseRE   = regexp.MustCompile(`[a-z]`)
	uppercaseRE   = regexp.MustCompile(`[A-Z]`)
	passSpecialRE = regexp.MustCompile(`[!@#$%^&*]`)
	injectionRE   = regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|style|object|embed|form|input|img|svg|link|meta)\b|on\w+\s*=|javascript:`)
	priceRE       = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// Range checks that value's length in characters lies in [min, max].
func Range(value, field string, min, max int) string {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return fmt.Sprintf("%s must be between %d and %d characters long.", field, min, max)
	}
	return ""
}

// NumberRange checks that value lies in [min, max].
func NumberRange(value float64, field string, min, max float64) string {
	if value < min || value > max {
		return fmt.Sprintf("%s must be between %v and %v.", field, min, max)
	}
	return ""
}

// NoDigits rejects values containing any digit. Used for name fields.
func NoDigits(value, field string) string {
	if digitRE.MatchString(value) {
		return fmt.Sprintf("%s must not contain numbers.", field)
	}
	return ""
}

// NoSpecialChars rejects values containing characters outside letters,
// digits, underscore, space, and hyphen.
func NoSpecialChars(value, field string) string {
	if specialRE.MatchString(value) {
		return fmt.Sprintf("%s must not contain special characters (!@#$%%^&* and similar).", field)
	}
	return ""
}

// Email checks the value is shaped like an email address. It is a shape
// check only; deliverability is the backend's problem.
func Email(value, field string) string {
	if !emailRE.MatchString(value) {
		return fmt.Sprintf("%s must be a correctly formatted email address.", field)
	}
	return ""
}

// PasswordLowercase requires at least one lowercase letter.
func PasswordLowercase(value string) string {
	if !lowercaseRE.MatchString(value) {
		return "The password must contain a lowercase letter."
	}
	return ""
}

// PasswordUppercase requires at least one uppercase letter.
func PasswordUppercase(value string) string {
	if !uppercaseRE.MatchString(value) {
		return "The password must contain an uppercase letter."
	}
	return ""
}

// PasswordDigit requires at least one digit.
func PasswordDigit(value string) string {
	if !digitRE.MatchString(value) {
		return "The password must contain a number."
	}
	return ""
}

// PasswordSpecialChar requires at least one of !@#$%^&*.
func PasswordSpecialChar(value string) string {
	if !passSpecialRE.MatchString(value) {
		return "The password must contain a special character (!@#$%^&*)."
	}
	return ""
}

// PasswordLength requires at least eight characters.
func PasswordLength(value string) string {
	if utf8.RuneCountInString(value) < 8 {
		return "The password is too short. At least eight characters."
	}
	return ""
}

// FilterPossibleInjection rejects values that look like markup or script
// injection attempts: HTML tags with active content, inline event handlers,
// and javascript: URLs.
func FilterPossibleInjection(value, field string) string {
	if injectionRE.MatchString(value) {
		return fmt.Sprintf("Your %s contains potentially harmful code.", field)
	}
	return ""
}

// PriceFormat checks the value is a decimal number with at most two
// decimals, using a dot as the separator.
func PriceFormat(value string) string {
	if !priceRE.MatchString(value) {
		return "Price must be a number, with a dot instead of a comma for decimals."
	}
	return ""
}

// Password runs every password rule and returns the failures.
func Password(value string) []string {
	var errs []string
	for _, msg := range []string{
		PasswordLowercase(value),
		PasswordUppercase(value),
		PasswordDigit(value),
		PasswordSpecialChar(value),
		PasswordLength(value),
	} {
		if msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// Registration validates a full account-creation form and returns every
// failure across its fields.
func Registration(firstname, lastname, email, password string) []string {
	var errs []string
	for _, msg := range []string{
		Range(firstname, "First name", 2, 32),
		NoDigits(firstname, "First name"),
		NoSpecialChars(firstname, "First name"),
		Range(lastname, "Last name", 2, 32),
		NoDigits(lastname, "Last name"),
		NoSpecialChars(lastname, "Last name"),
		Email(email, "Email"),
		FilterPossibleInjection(firstname, "first name"),
		FilterPossibleInjection(lastname, "last name"),
		FilterPossibleInjection(email, "email"),
	} {
		if msg != "" {
			errs = append(errs, msg)
		}
	}
	return append(errs, Password(password)...)
}
