// Package validation реализует доменные правила формата для имени
// пользователя, пароля и электронной почты. Все функции чистые,
// без побочных эффектов; первая нарушенная проверка определяет ошибку.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
)

// Границы длины полей учётной записи.
const (
	UsernameMinLength = 2
	UsernameMaxLength = 30

	PasswordMinLength = 2
	PasswordMaxLength = 75

	EmailMinLength = 3
	EmailMaxLength = 254
)

// Ошибки проверки формата. Возвращаются обёрнутыми с человеко-читаемым
// описанием, проверять следует через errors.Is.
var (
	// ErrUsernameInvalid имя пользователя не проходит проверку формата.
	ErrUsernameInvalid = errors.New("username invalid")
	// ErrPasswordInvalid пароль не проходит проверку формата.
	ErrPasswordInvalid = errors.New("password invalid")
	// ErrEmailInvalid электронная почта не проходит проверку формата.
	ErrEmailInvalid = errors.New("email invalid")
)

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Username проверяет имя пользователя: длина в пределах
// [UsernameMinLength, UsernameMaxLength], допустимы только
// латинские буквы, цифры, дефис и подчёркивание.
func Username(username string) error {
	if len(username) < UsernameMinLength {
		return fmt.Errorf("%w: username %q must be at least %d characters long",
			ErrUsernameInvalid, username, UsernameMinLength)
	}
	if len(username) > UsernameMaxLength {
		return fmt.Errorf("%w: username %q must be at most %d characters long",
			ErrUsernameInvalid, username, UsernameMaxLength)
	}
	if !usernameRegexp.MatchString(username) {
		return fmt.Errorf("%w: username %q must contain only A-Z, a-z, 0-9, -, or _ characters",
			ErrUsernameInvalid, username)
	}
	return nil
}

// Password проверяет пароль: длина в пределах
// [PasswordMinLength, PasswordMaxLength], пароль не может совпадать
// с именем пользователя (сравнение с учётом регистра).
func Password(password, username string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			ErrPasswordInvalid, PasswordMinLength)
	}
	if len(password) > PasswordMaxLength {
		return fmt.Errorf("%w: password must be at most %d characters long",
			ErrPasswordInvalid, PasswordMaxLength)
	}
	if password == username {
		return fmt.Errorf("%w: password cannot be the same as the username", ErrPasswordInvalid)
	}
	return nil
}

// Email проверяет адрес электронной почты: длина в пределах
// [EmailMinLength, EmailMaxLength] и соответствие формату RFC 5322.
func Email(email string) error {
	if len(email) < EmailMinLength {
		return fmt.Errorf("%w: email %q must be at least %d characters long",
			ErrEmailInvalid, email, EmailMinLength)
	}
	if len(email) > EmailMaxLength {
		return fmt.Errorf("%w: email %q must be at most %d characters long",
			ErrEmailInvalid, email, EmailMaxLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q format is not valid", ErrEmailInvalid, email)
	}
	return nil
}
