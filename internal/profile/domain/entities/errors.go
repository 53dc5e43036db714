// Package entities содержит агрегат DeveloperProfile и его дочерние сущности.
package entities

import "fmt"

// DomainErrorKind - класс структурного нарушения агрегата.
type DomainErrorKind int

const (
	KindNotFound DomainErrorKind = iota + 1
	KindInvariant
)

// DomainError - нарушение контракта агрегата, а не ошибка пользовательского ввода.
type DomainError struct {
	Kind    DomainErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is сравнивает по классу, а при непустом сообщении цели еще и по сообщению.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Ошибки агрегата.
var (
	ErrNotFound               = &DomainError{Kind: KindNotFound}
	ErrProjectNotFound        = &DomainError{Kind: KindNotFound, Message: "project not found"}
	ErrWorkExperienceNotFound = &DomainError{Kind: KindNotFound, Message: "work experience not found"}
	ErrNullElement            = &DomainError{Kind: KindInvariant, Message: "Collection must not contain null elements."}
)

func notFound(base *DomainError, id string) error {
	return fmt.Errorf("%w: %s", base, id)
}
