package app

import (
	"io"
	"time"
)

// ContactInput - контакты в запросах на изменение профиля.
type ContactInput struct {
	City    string `json:"city" validate:"max=100"`
	Country string `json:"country" validate:"max=100"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"max=32"`
	Website string `json:"website" validate:"omitempty,url"`
}

// SocialInput - ссылки на соцсети.
type SocialInput struct {
	LinkedIn string `json:"linkedIn" validate:"omitempty,url"`
	GitHub   string `json:"gitHub" validate:"omitempty,url"`
	Telegram string `json:"telegram" validate:"omitempty,url"`
	Twitter  string `json:"twitter" validate:"omitempty,url"`
}

// ProfileInput - полный набор полей профиля для создания и замены.
type ProfileInput struct {
	FirstName         string       `json:"firstName" validate:"required,max=100"`
	LastName          string       `json:"lastName" validate:"required,max=100"`
	Role              string       `json:"role" validate:"max=200"`
	Summary           string       `json:"summary" validate:"max=5000"`
	AvatarURL         string       `json:"avatarUrl" validate:"omitempty,url"`
	Contact           ContactInput `json:"contact"`
	Social            SocialInput  `json:"social"`
	Skills            []string     `json:"skills" validate:"dive,required,max=100"`
	OpenToWork        bool         `json:"openToWork"`
	YearsOfExperience *int         `json:"yearsOfExperience" validate:"omitempty,min=0"`
}

type CreateProfileCommand struct {
	UserID  string       `json:"-" validate:"required"`
	Profile ProfileInput `json:"profile"`
}

type ReplaceProfileCommand struct {
	UserID  string       `json:"-" validate:"required"`
	Profile ProfileInput `json:"profile"`
}

type UpdateHeaderCommand struct {
	UserID            string `json:"-" validate:"required"`
	FirstName         string `json:"firstName" validate:"required,max=100"`
	LastName          string `json:"lastName" validate:"required,max=100"`
	Role              string `json:"role" validate:"max=200"`
	OpenToWork        bool   `json:"openToWork"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"omitempty,min=0"`
}

type UpdateSummaryCommand struct {
	UserID  string `json:"-" validate:"required"`
	Summary string `json:"summary" validate:"max=5000"`
}

type UpdateContactsCommand struct {
	UserID  string       `json:"-" validate:"required"`
	Contact ContactInput `json:"contact"`
	Social  SocialInput  `json:"social"`
}

type ReplaceSkillsCommand struct {
	UserID string   `json:"-" validate:"required"`
	Skills []string `json:"skills" validate:"dive,required,max=100"`
}

// ProjectInput - поля проекта.
type ProjectInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	IconURL     string   `json:"iconUrl" validate:"omitempty,url"`
	Link        string   `json:"link" validate:"required,url"`
	TechStack   []string `json:"techStack" validate:"dive,required,max=100"`
}

type AddProjectCommand struct {
	UserID  string       `json:"-" validate:"required"`
	Project ProjectInput `json:"project"`
}

type UpdateProjectCommand struct {
	UserID    string       `json:"-" validate:"required"`
	ProjectID string       `json:"-" validate:"required"`
	Project   ProjectInput `json:"project"`
}

type RemoveProjectCommand struct {
	UserID    string `json:"-" validate:"required"`
	ProjectID string `json:"-" validate:"required"`
}

// WorkExperienceInput - поля места работы. EndDate не может быть раньше StartDate.
type WorkExperienceInput struct {
	Company     string     `json:"company" validate:"required,max=200"`
	City        string     `json:"city" validate:"max=100"`
	Country     string     `json:"country" validate:"max=100"`
	Role        string     `json:"role" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=4000"`
	StartDate   time.Time  `json:"startDate" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	TechStack   []string   `json:"techStack" validate:"dive,required,max=100"`
}

type AddWorkExperienceCommand struct {
	UserID     string              `json:"-" validate:"required"`
	Experience WorkExperienceInput `json:"experience"`
}

type UpdateWorkExperienceCommand struct {
	UserID           string              `json:"-" validate:"required"`
	WorkExperienceID string              `json:"-" validate:"required"`
	Experience       WorkExperienceInput `json:"experience"`
}

type RemoveWorkExperienceCommand struct {
	UserID           string `json:"-" validate:"required"`
	WorkExperienceID string `json:"-" validate:"required"`
}

// UploadAvatarCommand - загрузка нового аватара.
// BaseURL - схема и хост, от которых строится абсолютная ссылка на файл.
type UploadAvatarCommand struct {
	UserID      string    `json:"-" validate:"required"`
	Content     io.Reader `json:"-" validate:"-"`
	ContentType string    `json:"-" validate:"required"`
	Size        int64     `json:"-" validate:"min=1"`
	BaseURL     string    `json:"-" validate:"required,url"`
}

type UploadProjectImageCommand struct {
	UserID      string    `json:"-" validate:"required"`
	ProjectID   string    `json:"-" validate:"required"`
	Content     io.Reader `json:"-" validate:"-"`
	ContentType string    `json:"-" validate:"required"`
	Size        int64     `json:"-" validate:"min=1"`
	BaseURL     string    `json:"-" validate:"required,url"`
}

// SetVerificationCommand меняет статус проверки профиля. Неизвестный статус трактуется как NotVerified.
type SetVerificationCommand struct {
	ProfileID string `json:"-" validate:"required"`
	Status    string `json:"status"`
}

type DeleteProfileCommand struct {
	UserID string `json:"-" validate:"required"`
}

// GetProfileQuery - публичный просмотр профиля.
type GetProfileQuery struct {
	ID string `validate:"required"`
}

// CatalogQuery - фильтрация каталога в памяти.
type CatalogQuery struct {
	Search       string
	Skills       []string
	OpenToWork   *bool
	Verification string
}

// CatalogSearchQuery - постраничный поиск, выполняемый хранилищем.
type CatalogSearchQuery struct {
	Search       string
	Skills       []string
	OpenToWork   *bool
	Verification string
	SortField    string
	SortOrder    string
	Page         int
	PageSize     int
}

// GetResumeQuery - получение PDF-резюме.
type GetResumeQuery struct {
	ProfileID string `validate:"required"`
}
