package auth

import (
	stderrors "errors"
	"messenger/errors"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// handlePattern: an ASCII letter first, then letters, digits or underscores.
var handlePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return isPasswordComplex(fl.Field().String())
	})
	return v
}

// RegisterRequest is what a new messenger account must satisfy.
// Username is the public handle other users look up, unique and case sensitive.
// Password is capped at 72 bytes, mixing upper and lower case, digits and symbols.
type RegisterRequest struct {
	Username string `validate:"required,min=3,max=32,handle"`
	Password string `validate:"required,min=12,max=72,strongpassword"`
}

// ValidateRegister reports ErrInvalidPassword when only the character mix is
// wrong, and the validator error otherwise.
func ValidateRegister(req RegisterRequest) error {
	err := validate.Struct(req)
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) == 1 && fieldErrs[0].Tag() == "strongpassword" {
		return errors.ErrInvalidPassword
	}
	return err
}

func isPasswordComplex(s string) bool {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
