// Package validation checks account fields and list-level policies.
//
// All functions are pure. Failures are returned as values so the caller
// can render them next to the offending field.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// Length limits, counted in runes.
const (
	MinLoginLength    = 3
	MaxLoginLength    = 50
	MinPasswordLength = 6
	MaxPasswordLength = 100
)

// Field names used as keys in Errors.
const (
	FieldLogin    = "login"
	FieldPassword = "password"
)

// Errors returned by ValidateLogin and ValidatePassword. Their messages are
// what ValidateAccount puts into Errors.
var (
	ErrLoginRequired     = errors.New("login is required")
	ErrLoginTooShort     = errors.New("login must be at least 3 characters long")
	ErrLoginTooLong      = errors.New("login must not exceed 50 characters")
	ErrLoginInvalidChars = errors.New("login may contain only letters, digits, dots, hyphens and underscores")

	ErrPasswordRequired = errors.New("password is required for local accounts")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must not exceed 100 characters")
	ErrPasswordTooWeak  = errors.New("password must contain at least one uppercase letter, one lowercase letter and one digit")
)

var (
	loginPattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// Errors maps a field name to the message describing why it is invalid.
// Only failing fields are present.
type Errors map[string]string

// ValidateLogin returns the first rule the login breaks, or nil.
func ValidateLogin(login string) error {
	if strings.TrimSpace(login) == "" {
		return ErrLoginRequired
	}

	n := utf8.RuneCountInString(login)
	if n < MinLoginLength {
		return ErrLoginTooShort
	}
	if n > MaxLoginLength {
		return ErrLoginTooLong
	}

	if !loginPattern.MatchString(login) {
		return ErrLoginInvalidChars
	}
	return nil
}

// ValidatePassword returns the first rule the password breaks, or nil.
// Passwords are only checked for local accounts.
func ValidatePassword(password *string, isLocal bool) error {
	if !isLocal {
		return nil
	}
	if password == nil || *password == "" {
		return ErrPasswordRequired
	}

	pw := *password
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	if !upperPattern.MatchString(pw) || !lowerPattern.MatchString(pw) || !digitPattern.MatchString(pw) {
		return ErrPasswordTooWeak
	}
	return nil
}

// HasSpecialChar reports whether the password contains a punctuation
// character. It is a hint only and never makes a password invalid.
func HasSpecialChar(password string) bool {
	return specialPattern.MatchString(password)
}

// ValidateAccount collects the field errors of a single account.
func ValidateAccount(a models.Account) Errors {
	errs := Errors{}
	if err := ValidateLogin(a.Login); err != nil {
		errs[FieldLogin] = err.Error()
	}
	if err := ValidatePassword(a.Password, a.IsLocal()); err != nil {
		errs[FieldPassword] = err.Error()
	}
	return errs
}

// IsAccountValid reports whether the account has no field errors.
func IsAccountValid(a models.Account) bool {
	return len(ValidateAccount(a)) == 0
}

// IsEmptyAccount reports whether the account is an unfilled placeholder row.
func IsEmptyAccount(a models.Account) bool {
	return strings.TrimSpace(a.Login) == "" && (a.Password == nil || *a.Password == "")
}

// CanAddNewAccount reports whether another blank account may be appended:
// the list is empty, or every account is valid and none is a placeholder.
func CanAddNewAccount(accounts []models.Account) bool {
	for _, a := range accounts {
		if !IsAccountValid(a) || IsEmptyAccount(a) {
			return false
		}
	}
	return true
}
