package values

// MaxNamePartLength - максимальная длина имени и фамилии.
const MaxNamePartLength = 100

// PersonName - имя и фамилия разработчика.
type PersonName struct {
	first string
	last  string
}

// NewPersonName создает имя. Обе части обязательны.
func NewPersonName(first, last string) (PersonName, error) {
	f, err := boundedText("firstName", first, MaxNamePartLength, true)
	if err != nil {
		return PersonName{}, err
	}
	l, err := boundedText("lastName", last, MaxNamePartLength, true)
	if err != nil {
		return PersonName{}, err
	}
	return PersonName{first: f, last: l}, nil
}

func (n PersonName) FirstName() string { return n.first }
func (n PersonName) LastName() string  { return n.last }

// FullName возвращает "Имя Фамилия".
func (n PersonName) FullName() string {
	return n.first + " " + n.last
}

func (n PersonName) Equal(other PersonName) bool {
	return n == other
}
