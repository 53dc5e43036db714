// Package document описывает сохраняемое представление профиля, общее для Postgres (jsonb) и MongoDB.
package document

import (
	"fmt"
	"strings"
	"time"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
)

const errCtxRestore = "failed to restore profile document"

type Location struct {
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type Social struct {
	LinkedIn string `json:"linkedIn,omitempty" bson:"linkedIn,omitempty"`
	GitHub   string `json:"gitHub,omitempty" bson:"gitHub,omitempty"`
	Telegram string `json:"telegram,omitempty" bson:"telegram,omitempty"`
	Twitter  string `json:"twitter,omitempty" bson:"twitter,omitempty"`
}

type Project struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Link        string    `json:"link" bson:"link"`
	TechStack   []string  `json:"techStack" bson:"techStack"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type WorkExperience struct {
	ID          string     `json:"id" bson:"id"`
	Company     string     `json:"company" bson:"company"`
	Location    *Location  `json:"location,omitempty" bson:"location,omitempty"`
	Role        string     `json:"role" bson:"role"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	StartDate   time.Time  `json:"startDate" bson:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	TechStack   []string   `json:"techStack" bson:"techStack"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ProfileDocument - агрегат в виде документа. SkillsLower и поля имени дублируются
// для индексов и поиска по каталогу.
type ProfileDocument struct {
	ID                string           `json:"id" bson:"_id"`
	FirstName         string           `json:"firstName" bson:"firstName"`
	LastName          string           `json:"lastName" bson:"lastName"`
	Role              string           `json:"role,omitempty" bson:"role,omitempty"`
	Summary           string           `json:"summary,omitempty" bson:"summary,omitempty"`
	Avatar            string           `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Location          *Location        `json:"location,omitempty" bson:"location,omitempty"`
	Email             string           `json:"email" bson:"email"`
	Phone             string           `json:"phone,omitempty" bson:"phone,omitempty"`
	Website           string           `json:"website,omitempty" bson:"website,omitempty"`
	Social            Social           `json:"social" bson:"social"`
	Skills            []string         `json:"skills" bson:"skills"`
	SkillsLower       []string         `json:"-" bson:"skills_lower"`
	Verification      string           `json:"verification" bson:"verification"`
	OpenToWork        bool             `json:"openToWork" bson:"openToWork"`
	YearsOfExperience int              `json:"yearsOfExperience" bson:"yearsOfExperience"`
	Projects          []Project        `json:"projects" bson:"projects"`
	WorkExperience    []WorkExperience `json:"workExperience" bson:"workExperience"`
	CreatedAt         time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func str[T interface{ String() string }](v *T) string {
	if v == nil {
		return ""
	}
	return (*v).String()
}

func location(l *values.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{City: l.City(), Country: l.Country()}
}

// LowerSkills приводит навыки к нижнему регистру для фильтрации.
func LowerSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, strings.ToLower(s))
	}
	return out
}

// ToDocument отображает агрегат в документ.
func ToDocument(p *entities.DeveloperProfile) ProfileDocument {
	contact := p.Contact()
	social := p.Social()
	skills := values.SkillStrings(p.Skills())

	doc := ProfileDocument{
		ID:        p.ID().String(),
		FirstName: p.Name().FirstName(),
		LastName:  p.Name().LastName(),
		Role:      str(p.Role()),
		Summary:   str(p.Summary()),
		Avatar:    str(p.Avatar()),
		Location:  location(contact.Location()),
		Email:     contact.Email().String(),
		Phone:     str(contact.Phone()),
		Website:   str(contact.Website()),
		Social: Social{
			LinkedIn: str(social.LinkedIn()),
			GitHub:   str(social.GitHub()),
			Telegram: str(social.Telegram()),
			Twitter:  str(social.Twitter()),
		},
		Skills:            skills,
		SkillsLower:       LowerSkills(skills),
		Verification:      p.Verification().String(),
		OpenToWork:        p.OpenToWork().IsOpen(),
		YearsOfExperience: p.YearsOfExperience().Int(),
		Projects:          make([]Project, 0, len(p.Projects())),
		WorkExperience:    make([]WorkExperience, 0, len(p.WorkExperience())),
		CreatedAt:         p.CreatedAt().UTC(),
		UpdatedAt:         p.UpdatedAt().UTC(),
	}

	for _, item := range p.Projects() {
		doc.Projects = append(doc.Projects, Project{
			ID:          item.ID().String(),
			Name:        item.Name().String(),
			Description: str(item.Description()),
			Icon:        str(item.Icon()),
			Link:        item.Link().String(),
			TechStack:   values.SkillStrings(item.TechStack()),
			UpdatedAt:   item.UpdatedAt().UTC(),
		})
	}
	for _, item := range p.WorkExperience() {
		doc.WorkExperience = append(doc.WorkExperience, WorkExperience{
			ID:          item.ID().String(),
			Company:     item.Company().String(),
			Location:    location(item.Location()),
			Role:        item.Role().String(),
			Description: str(item.Description()),
			StartDate:   item.Period().Start(),
			EndDate:     item.Period().End(),
			TechStack:   values.SkillStrings(item.TechStack()),
			UpdatedAt:   item.UpdatedAt().UTC(),
		})
	}
	return doc
}

// FromDocument восстанавливает агрегат. Значения проходят те же проверки, что и при создании.
func FromDocument(doc ProfileDocument) (*entities.DeveloperProfile, error) {
	snapshot, err := toSnapshot(doc)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", errCtxRestore, doc.ID, err)
	}
	profile, err := entities.RestoreDeveloperProfile(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", errCtxRestore, doc.ID, err)
	}
	return profile, nil
}

func toSnapshot(doc ProfileDocument) (entities.ProfileSnapshot, error) {
	var s entities.ProfileSnapshot

	name, err := values.NewPersonName(doc.FirstName, doc.LastName)
	if err != nil {
		return s, err
	}
	role, err := values.TryRoleTitle(doc.Role)
	if err != nil {
		return s, err
	}
	summary, err := values.TryProfileSummary(doc.Summary)
	if err != nil {
		return s, err
	}
	avatar, err := values.TryAvatar(doc.Avatar)
	if err != nil {
		return s, err
	}
	contact, err := restoreContact(doc)
	if err != nil {
		return s, err
	}
	social, err := values.TrySocialLinks(doc.Social.LinkedIn, doc.Social.GitHub, doc.Social.Telegram, doc.Social.Twitter)
	if err != nil {
		return s, err
	}
	years, err := values.NewYearsOfExperience(doc.YearsOfExperience)
	if err != nil {
		return s, err
	}
	skills, err := values.NewSkillTags(doc.Skills)
	if err != nil {
		return s, err
	}

	s = entities.ProfileSnapshot{
		ID: entities.DeveloperID(doc.ID),
		Details: entities.ProfileDetails{
			Name:              name,
			Role:              role,
			Summary:           summary,
			Avatar:            avatar,
			Contact:           contact,
			Social:            social,
			Verification:      values.ParseVerificationStatus(doc.Verification),
			OpenToWork:        values.NewOpenToWorkStatus(doc.OpenToWork),
			YearsOfExperience: &years,
		},
		Skills:         skills,
		Projects:       make([]entities.ProjectSnapshot, 0, len(doc.Projects)),
		WorkExperience: make([]entities.WorkExperienceSnapshot, 0, len(doc.WorkExperience)),
		CreatedAt:      doc.CreatedAt.UTC(),
		UpdatedAt:      doc.UpdatedAt.UTC(),
	}

	for _, pd := range doc.Projects {
		project, err := restoreProject(pd)
		if err != nil {
			return s, err
		}
		s.Projects = append(s.Projects, project)
	}
	for _, wd := range doc.WorkExperience {
		work, err := restoreWorkExperience(wd)
		if err != nil {
			return s, err
		}
		s.WorkExperience = append(s.WorkExperience, work)
	}
	return s, nil
}

func restoreLocation(l *Location) (*values.Location, error) {
	if l == nil {
		return nil, nil
	}
	return values.TryLocation(l.City, l.Country)
}

func restoreContact(doc ProfileDocument) (values.ContactInfo, error) {
	loc, err := restoreLocation(doc.Location)
	if err != nil {
		return values.ContactInfo{}, err
	}
	email, err := values.NewEmailAddress(doc.Email)
	if err != nil {
		return values.ContactInfo{}, err
	}
	phone, err := values.TryPhoneNumber(doc.Phone)
	if err != nil {
		return values.ContactInfo{}, err
	}
	website, err := values.TryURL(doc.Website)
	if err != nil {
		return values.ContactInfo{}, err
	}
	return values.NewContactInfo(loc, email, phone, website)
}

func restoreProject(pd Project) (entities.ProjectSnapshot, error) {
	name, err := values.NewProjectName(pd.Name)
	if err != nil {
		return entities.ProjectSnapshot{}, err
	}
	description, err := values.TryProjectDescription(pd.Description)
	if err != nil {
		return entities.ProjectSnapshot{}, err
	}
	icon, err := values.TryProjectIcon(pd.Icon)
	if err != nil {
		return entities.ProjectSnapshot{}, err
	}
	link, err := values.NewURL(pd.Link)
	if err != nil {
		return entities.ProjectSnapshot{}, err
	}
	stack, err := values.NewSkillTags(pd.TechStack)
	if err != nil {
		return entities.ProjectSnapshot{}, err
	}
	return entities.ProjectSnapshot{
		ID:        entities.ProjectID(pd.ID),
		Details:   entities.ProjectDetails{Name: name, Description: description, Icon: icon, Link: link, TechStack: stack},
		UpdatedAt: pd.UpdatedAt.UTC(),
	}, nil
}

func restoreWorkExperience(wd WorkExperience) (entities.WorkExperienceSnapshot, error) {
	company, err := values.NewCompanyName(wd.Company)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	loc, err := restoreLocation(wd.Location)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	role, err := values.NewRoleTitle(wd.Role)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	description, err := values.TryWorkDescription(wd.Description)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	period, err := values.NewPeriod(wd.StartDate, wd.EndDate)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	stack, err := values.NewSkillTags(wd.TechStack)
	if err != nil {
		return entities.WorkExperienceSnapshot{}, err
	}
	return entities.WorkExperienceSnapshot{
		ID: entities.WorkExperienceID(wd.ID),
		Details: entities.WorkExperienceDetails{
			Company:     company,
			Location:    loc,
			Role:        role,
			Description: description,
			Period:      period,
			TechStack:   stack,
		},
		UpdatedAt: wd.UpdatedAt.UTC(),
	}, nil
}
