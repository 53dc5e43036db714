package values

import "strings"

// VerificationStatus - статус проверки профиля.
type VerificationStatus int

const (
	NotVerified VerificationStatus = iota
	Fake
	Verified
	Premium
)

var verificationNames = [...]string{
	NotVerified: "NotVerified",
	Fake:        "Fake",
	Verified:    "Verified",
	Premium:     "Premium",
}

// ParseVerificationStatus разбирает имя без учета регистра.
// Пустое или неизвестное значение дает NotVerified.
func ParseVerificationStatus(value string) VerificationStatus {
	v := strings.TrimSpace(value)
	for status, name := range verificationNames {
		if strings.EqualFold(name, v) {
			return VerificationStatus(status)
		}
	}
	return NotVerified
}

func (s VerificationStatus) String() string {
	if s < NotVerified || int(s) >= len(verificationNames) {
		return verificationNames[NotVerified]
	}
	return verificationNames[s]
}

// OpenToWorkStatus - открыт ли разработчик к предложениям.
type OpenToWorkStatus struct{ open bool }

func NewOpenToWorkStatus(open bool) OpenToWorkStatus { return OpenToWorkStatus{open: open} }

func (o OpenToWorkStatus) IsOpen() bool { return o.open }

// YearsOfExperience - неотрицательный стаж в годах.
type YearsOfExperience struct{ value int }

func NewYearsOfExperience(value int) (YearsOfExperience, error) {
	if value < 0 {
		return YearsOfExperience{}, invalid("yearsOfExperience", "must not be negative")
	}
	return YearsOfExperience{value: value}, nil
}

func (y YearsOfExperience) Int() int { return y.value }
