package values

import "regexp"

const maxLocationPartLength = 100

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{5,32}$`)

// PhoneNumber - номер телефона в свободном формате.
type PhoneNumber struct{ value string }

// TryPhoneNumber возвращает nil для пустого значения.
func TryPhoneNumber(value string) (*PhoneNumber, error) {
	v, err := boundedText("phone", value, 32, false)
	if err != nil || v == "" {
		return nil, err
	}
	if !phonePattern.MatchString(v) {
		return nil, invalid("phone", "must contain only digits, spaces and +-()")
	}
	return &PhoneNumber{value: v}, nil
}

func (p PhoneNumber) String() string { return p.value }

// Location - город и страна.
type Location struct {
	city    string
	country string
}

// TryLocation возвращает nil, если не задан ни город, ни страна.
func TryLocation(city, country string) (*Location, error) {
	c, err := boundedText("city", city, maxLocationPartLength, false)
	if err != nil {
		return nil, err
	}
	co, err := boundedText("country", country, maxLocationPartLength, false)
	if err != nil {
		return nil, err
	}
	if c == "" && co == "" {
		return nil, nil
	}
	return &Location{city: c, country: co}, nil
}

func (l Location) City() string    { return l.city }
func (l Location) Country() string { return l.country }

// ContactInfo - блок контактов. Email обязателен.
type ContactInfo struct {
	location *Location
	email    EmailAddress
	phone    *PhoneNumber
	website  *URL
}

func NewContactInfo(location *Location, email EmailAddress, phone *PhoneNumber, website *URL) (ContactInfo, error) {
	if email.IsZero() {
		return ContactInfo{}, invalid("email", "must not be empty")
	}
	return ContactInfo{location: location, email: email, phone: phone, website: website}, nil
}

func (c ContactInfo) Location() *Location { return c.location }
func (c ContactInfo) Email() EmailAddress { return c.email }
func (c ContactInfo) Phone() *PhoneNumber { return c.phone }
func (c ContactInfo) Website() *URL       { return c.website }

// SocialLinks - ссылки на профили в соцсетях, каждая необязательна.
type SocialLinks struct {
	linkedIn *URL
	gitHub   *URL
	telegram *URL
	twitter  *URL
}

func NewSocialLinks(linkedIn, gitHub, telegram, twitter *URL) SocialLinks {
	return SocialLinks{linkedIn: linkedIn, gitHub: gitHub, telegram: telegram, twitter: twitter}
}

// TrySocialLinks разбирает все ссылки, пустые становятся отсутствующими.
func TrySocialLinks(linkedIn, gitHub, telegram, twitter string) (SocialLinks, error) {
	var (
		links SocialLinks
		err   error
	)
	if links.linkedIn, err = tryURL("linkedIn", linkedIn); err != nil {
		return SocialLinks{}, err
	}
	if links.gitHub, err = tryURL("gitHub", gitHub); err != nil {
		return SocialLinks{}, err
	}
	if links.telegram, err = tryURL("telegram", telegram); err != nil {
		return SocialLinks{}, err
	}
	if links.twitter, err = tryURL("twitter", twitter); err != nil {
		return SocialLinks{}, err
	}
	return links, nil
}

func (s SocialLinks) LinkedIn() *URL { return s.linkedIn }
func (s SocialLinks) GitHub() *URL   { return s.gitHub }
func (s SocialLinks) Telegram() *URL { return s.telegram }
func (s SocialLinks) Twitter() *URL  { return s.twitter }
