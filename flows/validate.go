package flows

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/MrEthical07/authcore/password"
)

const birthDateLayout = "2006-01-02"

var (
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
	sixDigitCode = regexp.MustCompile(`^[0-9]{6}$`)
	documentRe   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	phoneRe      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	usernameRe   = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// field is one ordered check. The first failing field supplies the single
// step error.
type field struct {
	value any
	rules []validation.Rule
}

func firstError(fields ...field) string {
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return err.Error()
		}
	}
	return ""
}

func birthDateRules(now func() time.Time) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter your date of birth."),
		validation.Date(birthDateLayout).Error("Use the format YYYY-MM-DD for your date of birth."),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			t, err := time.Parse(birthDateLayout, s)
			if err != nil {
				return nil
			}
			if t.After(now()) {
				return validation.NewError("birth_date_future", "Your date of birth can't be in the future.")
			}
			return nil
		}),
	}
}

func codeRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter the verification code."),
		validation.Match(sixDigitCode).Error("The code has 6 digits."),
	}
}

func accountNumberRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter your account number."),
		validation.Match(digitsOnly).Error("The account number has only digits."),
		validation.Length(6, 20).Error("The account number has 6 to 20 digits."),
	}
}

func documentRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter your document number."),
		validation.Match(documentRe).Error("The document number has only letters and digits."),
		validation.Length(5, 20).Error("The document number has 5 to 20 characters."),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter your email."),
		is.EmailFormat.Error("Enter a valid email."),
	}
}

func phoneRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter your phone number."),
		validation.Match(phoneRe).Error("Enter a valid phone number."),
	}
}

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Choose a username."),
		validation.Length(4, 30).Error("The username has 4 to 30 characters."),
		validation.Match(usernameRe).Error("The username may use letters, digits, dots, dashes and underscores."),
	}
}

// passwordRules checks the new password against the policy and the
// confirmation field.
func passwordRules(p password.Policy, confirmation string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Enter a password."),
		validation.By(func(value interface{}) error {
			pw, _ := value.(string)
			return policyError(p, p.Check(pw, confirmation))
		}),
	}
}

func policyError(p password.Policy, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, password.ErrTooShort):
		return validation.NewError("password_too_short", "The password must have at least "+strconv.Itoa(p.MinLength)+" characters.")
	case errors.Is(err, password.ErrMissingLetter):
		return validation.NewError("password_letter", "The password must contain a letter.")
	case errors.Is(err, password.ErrMissingDigit):
		return validation.NewError("password_digit", "The password must contain a digit.")
	case errors.Is(err, password.ErrMismatch):
		return validation.NewError("password_mismatch", "The passwords don't match.")
	default:
		return err
	}
}
