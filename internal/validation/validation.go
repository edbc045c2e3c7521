package validation

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// User-facing messages. The service answers in Russian, matching the
// wording clients already depend on.
const (
	MsgRequired            = "Это поле обязательно."
	MsgPasswordPolicy      = "Пароль должен содержать от 8 символов, 1 заглавную букву, 1 число."
	MsgPasswordMismatch    = "Пароли не совпадают."
	MsgEmailTaken          = "Данный email уже зарегистрирован."
	MsgEmailInvalid        = "Введите корректный email"
	MsgInvalidCode         = "Неверный код"
	MsgWrongOldPassword    = "Неверный старый пароль"
	MsgNewPasswordMismatch = "Новые пароли не совпадают"
)

var validate = validator.New()

// Errors aggregates field-scoped validation messages. All invalid fields are
// reported together, not just the first failure.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no field collected a message.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Error implements the error interface so an Errors value can travel up
// through service return values.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[f], ", "))
	}
	return b.String()
}

// ValidPassword checks the registration password policy: at least 8
// characters, one uppercase letter and one digit.
func ValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// ValidEmail checks address syntax.
func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
