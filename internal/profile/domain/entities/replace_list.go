package entities

// Nullable - элемент коллекции, нулевое значение которого считается отсутствующим.
type Nullable interface {
	IsZero() bool
}

// ReplaceList заменяет содержимое target элементами source в исходном порядке.
// nil source очищает target. При нулевом элементе target не меняется.
func ReplaceList[T Nullable](target *[]T, source []T, normalize func(T) T) error {
	if source == nil {
		*target = []T{}
		return nil
	}

	next := make([]T, 0, len(source))
	for _, item := range source {
		if item.IsZero() {
			return ErrNullElement
		}
		if normalize != nil {
			item = normalize(item)
		}
		next = append(next, item)
	}

	*target = next
	return nil
}
