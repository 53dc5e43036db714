package values

import (
	"net/url"
	"strings"
)

const maxURLLength = 2048

// URL - абсолютный корректный URI со схемой и хостом.
type URL struct {
	raw string
}

// NewURL создает обязательный URL.
func NewURL(value string) (URL, error) {
	return parseURL("url", value)
}

// TryURL возвращает nil для пустого значения и ошибку для некорректного.
func TryURL(value string) (*URL, error) {
	return tryURL("url", value)
}

func tryURL(field, value string) (*URL, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	u, err := parseURL(field, value)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func parseURL(field, value string) (URL, error) {
	v, err := boundedText(field, value, maxURLLength, true)
	if err != nil {
		return URL{}, err
	}

	parsed, err := url.Parse(v)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" || strings.ContainsAny(v, " \t\n") {
		return URL{}, invalid(field, "must be an absolute URL")
	}

	return URL{raw: v}, nil
}

func (u URL) String() string { return u.raw }

func (u URL) Equal(other URL) bool { return u.raw == other.raw }

// Avatar - ссылка на изображение профиля.
type Avatar struct {
	url URL
}

// TryAvatar возвращает nil для пустой ссылки.
func TryAvatar(value string) (*Avatar, error) {
	u, err := tryURL("avatarUrl", value)
	if err != nil || u == nil {
		return nil, err
	}
	return &Avatar{url: *u}, nil
}

// NewAvatar оборачивает уже проверенный URL.
func NewAvatar(u URL) Avatar { return Avatar{url: u} }

func (a Avatar) URL() URL       { return a.url }
func (a Avatar) String() string { return a.url.String() }

// ProjectIcon - ссылка на изображение проекта.
type ProjectIcon struct {
	url URL
}

// NewProjectIcon создает обязательную ссылку на иконку.
func NewProjectIcon(value string) (ProjectIcon, error) {
	u, err := parseURL("icon", value)
	if err != nil {
		return ProjectIcon{}, err
	}
	return ProjectIcon{url: u}, nil
}

// TryProjectIcon возвращает nil для пустой ссылки.
func TryProjectIcon(value string) (*ProjectIcon, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	icon, err := NewProjectIcon(value)
	if err != nil {
		return nil, err
	}
	return &icon, nil
}

func (i ProjectIcon) URL() URL       { return i.url }
func (i ProjectIcon) String() string { return i.url.String() }
