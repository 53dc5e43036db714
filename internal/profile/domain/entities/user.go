package entities

import (
	"errors"
	"time"
)

// Ошибки пользователя.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
)

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User - учетная запись, созданная при первом входе через Google.
type User struct {
	ID            string
	GoogleSubject string
	Email         string
	DisplayName   string
	PictureURL    string
	Role          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin сообщает, может ли пользователь менять статус проверки профилей.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
