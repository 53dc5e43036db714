package values

import (
	"net/mail"
	"strings"
)

const maxEmailLength = 320

// EmailAddress - синтаксически корректный адрес электронной почты.
type EmailAddress struct {
	value string
}

// NewEmailAddress проверяет адрес: непустые локальная часть и домен, разделенные @.
func NewEmailAddress(value string) (EmailAddress, error) {
	v, err := boundedText("email", value, maxEmailLength, true)
	if err != nil {
		return EmailAddress{}, err
	}

	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return EmailAddress{}, invalid("email", "must be a valid email address")
	}

	local, domain, ok := strings.Cut(v, "@")
	if !ok || local == "" || domain == "" || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return EmailAddress{}, invalid("email", "must be a valid email address")
	}

	return EmailAddress{value: v}, nil
}

func (e EmailAddress) String() string { return e.value }

// IsZero сообщает, что адрес не задан.
func (e EmailAddress) IsZero() bool { return e.value == "" }

func (e EmailAddress) Equal(other EmailAddress) bool {
	return strings.EqualFold(e.value, other.value)
}
