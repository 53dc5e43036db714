package app

import (
	"time"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
)

type LocationDTO struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type SocialLinksDTO struct {
	LinkedIn string `json:"linkedIn,omitempty"`
	GitHub   string `json:"gitHub,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

type ProjectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IconURL     string    `json:"iconUrl,omitempty"`
	Link        string    `json:"link"`
	TechStack   []string  `json:"techStack"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WorkExperienceDTO struct {
	ID          string       `json:"id"`
	Company     string       `json:"company"`
	Location    *LocationDTO `json:"location,omitempty"`
	Role        string       `json:"role"`
	Description string       `json:"description,omitempty"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	TechStack   []string     `json:"techStack"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ProfileDTO - плоское представление агрегата.
type ProfileDTO struct {
	ID                string              `json:"id"`
	FirstName         string              `json:"firstName"`
	LastName          string              `json:"lastName"`
	Role              string              `json:"role,omitempty"`
	Summary           string              `json:"summary,omitempty"`
	AvatarURL         string              `json:"avatarUrl,omitempty"`
	Location          *LocationDTO        `json:"location,omitempty"`
	Email             string              `json:"email"`
	Phone             string              `json:"phone,omitempty"`
	Website           string              `json:"website,omitempty"`
	Social            SocialLinksDTO      `json:"social"`
	Skills            []string            `json:"skills"`
	Verification      string              `json:"verification"`
	OpenToWork        bool                `json:"openToWork"`
	YearsOfExperience int                 `json:"yearsOfExperience"`
	Projects          []ProjectDTO        `json:"projects"`
	WorkExperience    []WorkExperienceDTO `json:"workExperience"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// ProfileCardDTO - краткая карточка для каталога.
type ProfileCardDTO struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Role              string    `json:"role,omitempty"`
	AvatarURL         string    `json:"avatarUrl,omitempty"`
	Skills            []string  `json:"skills"`
	Verification      string    `json:"verification"`
	OpenToWork        bool      `json:"openToWork"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PagedResult - страница каталога.
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func stringOrEmpty[T interface{ String() string }](v *T) string {
	if v == nil {
		return ""
	}
	return (*v).String()
}

func locationDTO(l *values.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{City: l.City(), Country: l.Country()}
}

// ToProfileDTO отображает агрегат в DTO.
func ToProfileDTO(p *entities.DeveloperProfile) ProfileDTO {
	contact := p.Contact()
	social := p.Social()

	dto := ProfileDTO{
		ID:        p.ID().String(),
		FirstName: p.Name().FirstName(),
		LastName:  p.Name().LastName(),
		Role:      stringOrEmpty(p.Role()),
		Summary:   stringOrEmpty(p.Summary()),
		AvatarURL: stringOrEmpty(p.Avatar()),
		Location:  locationDTO(contact.Location()),
		Email:     contact.Email().String(),
		Phone:     stringOrEmpty(contact.Phone()),
		Website:   stringOrEmpty(contact.Website()),
		Social: SocialLinksDTO{
			LinkedIn: stringOrEmpty(social.LinkedIn()),
			GitHub:   stringOrEmpty(social.GitHub()),
			Telegram: stringOrEmpty(social.Telegram()),
			Twitter:  stringOrEmpty(social.Twitter()),
		},
		Skills:            values.SkillStrings(p.Skills()),
		Verification:      p.Verification().String(),
		OpenToWork:        p.OpenToWork().IsOpen(),
		YearsOfExperience: p.YearsOfExperience().Int(),
		Projects:          make([]ProjectDTO, 0, len(p.Projects())),
		WorkExperience:    make([]WorkExperienceDTO, 0, len(p.WorkExperience())),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}

	for _, item := range p.Projects() {
		dto.Projects = append(dto.Projects, ProjectDTO{
			ID:          item.ID().String(),
			Name:        item.Name().String(),
			Description: stringOrEmpty(item.Description()),
			IconURL:     stringOrEmpty(item.Icon()),
			Link:        item.Link().String(),
			TechStack:   values.SkillStrings(item.TechStack()),
			UpdatedAt:   item.UpdatedAt(),
		})
	}
	for _, item := range p.WorkExperience() {
		dto.WorkExperience = append(dto.WorkExperience, WorkExperienceDTO{
			ID:          item.ID().String(),
			Company:     item.Company().String(),
			Location:    locationDTO(item.Location()),
			Role:        item.Role().String(),
			Description: stringOrEmpty(item.Description()),
			StartDate:   item.Period().Start(),
			EndDate:     item.Period().End(),
			TechStack:   values.SkillStrings(item.TechStack()),
			UpdatedAt:   item.UpdatedAt(),
		})
	}
	return dto
}

// ToProfileCardDTO отображает агрегат в карточку каталога.
func ToProfileCardDTO(p *entities.DeveloperProfile) ProfileCardDTO {
	return ProfileCardDTO{
		ID:                p.ID().String(),
		FirstName:         p.Name().FirstName(),
		LastName:          p.Name().LastName(),
		Role:              stringOrEmpty(p.Role()),
		AvatarURL:         stringOrEmpty(p.Avatar()),
		Skills:            values.SkillStrings(p.Skills()),
		Verification:      p.Verification().String(),
		OpenToWork:        p.OpenToWork().IsOpen(),
		YearsOfExperience: p.YearsOfExperience().Int(),
		UpdatedAt:         p.UpdatedAt(),
	}
}
