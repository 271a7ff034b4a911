package auth

import (
	"fmt"
	"regexp"
	"time"
	"unicode"

	appErrors "github.com/mindmoney/mindmoney/customErrors"
)

const (
	MAX_LENGTH_USERNAME = 255
	MAX_LENGTH_EMAIL    = 255
	MIN_LENGTH_USERNAME = 4
	MIN_PASSWORD_LENGTH = 8
	MAX_PASSWORD_LENGTH = 72 // bcrypt input limit
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9](\.?[a-zA-Z0-9_%+-])*@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

// User is one registered account. PasswordHashed is the only field that
// ever changes after signup; accounts are never deleted.
type User struct {
	ID             string
	Email          string
	UserName       string
	PasswordHashed string
}

type NewUser struct {
	Email         string
	UserName      string
	PasswordPlain string
}

type UserCredentialsPure struct {
	Email         string
	PasswordPlain string
}

type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	UserID    string
}

func (newUser NewUser) ValidateUserFields() error {
	if newUser.Email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if !emailRegex.MatchString(newUser.Email) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid email format, example valid email: john.doe@gmail.com",
		}
	}
	if len(newUser.Email) > MAX_LENGTH_EMAIL {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Email so long, maximum length is %d", MAX_LENGTH_EMAIL),
		}
	}
	if len(newUser.UserName) < MIN_LENGTH_USERNAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Username must be at least %d characters.", MIN_LENGTH_USERNAME),
		}
	}
	if len(newUser.UserName) > MAX_LENGTH_USERNAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Username so long, maximum length is %d", MAX_LENGTH_USERNAME),
		}
	}
	return ValidatePassword(newUser.PasswordPlain)
}

// ValidatePassword enforces the strength rules the signup form used to
// check client side: length, an upper-case letter, a digit and a symbol.
func ValidatePassword(password string) error {
	if password == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Password cannot be empty!",
		}
	}
	if len(password) < MIN_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password must be at least %d characters.", MIN_PASSWORD_LENGTH),
		}
	}
	if len(password) > MAX_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so long, maximum length is %d", MAX_PASSWORD_LENGTH),
		}
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Password is not strong enough.",
		}
	}
	return nil
}
