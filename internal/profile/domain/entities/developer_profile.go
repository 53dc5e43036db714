package entities

import (
	"time"

	"devprofile/internal/profile/domain/values"
)

// DeveloperID - идентификатор профиля, совпадает с идентификатором пользователя.
type DeveloperID string

func (id DeveloperID) String() string { return string(id) }

// ProfileDetails - поля заголовка и контактов, задаваемые при создании профиля.
type ProfileDetails struct {
	Name              values.PersonName
	Role              *values.RoleTitle
	Summary           *values.ProfileSummary
	Avatar            *values.Avatar
	Contact           values.ContactInfo
	Social            values.SocialLinks
	Verification      values.VerificationStatus
	OpenToWork        values.OpenToWorkStatus
	YearsOfExperience *values.YearsOfExperience
}

// DeveloperProfile - корень агрегата. Каждая операция изменения принимает now
// и выставляет его в UpdatedAt, CreatedAt после создания не меняется.
type DeveloperProfile struct {
	id             DeveloperID
	name           values.PersonName
	role           *values.RoleTitle
	summary        *values.ProfileSummary
	avatar         *values.Avatar
	contact        values.ContactInfo
	social         values.SocialLinks
	skills         []values.SkillTag
	verification   values.VerificationStatus
	openToWork     values.OpenToWorkStatus
	years          values.YearsOfExperience
	projects       []*ProjectItem
	workExperience []*WorkExperienceItem
	createdAt      time.Time
	updatedAt      time.Time
}

// CreateDeveloperProfile создает новый профиль. Значения уже проверены своими конструкторами.
func CreateDeveloperProfile(id DeveloperID, details ProfileDetails, now time.Time) *DeveloperProfile {
	p := &DeveloperProfile{
		id:             id,
		name:           details.Name,
		role:           details.Role,
		summary:        details.Summary,
		avatar:         details.Avatar,
		contact:        details.Contact,
		social:         details.Social,
		skills:         []values.SkillTag{},
		verification:   details.Verification,
		openToWork:     details.OpenToWork,
		projects:       []*ProjectItem{},
		workExperience: []*WorkExperienceItem{},
		createdAt:      now,
		updatedAt:      now,
	}
	if details.YearsOfExperience != nil {
		p.years = *details.YearsOfExperience
	}
	return p
}

func (p *DeveloperProfile) touch(now time.Time) {
	p.updatedAt = now
}

func (p *DeveloperProfile) ID() DeveloperID                         { return p.id }
func (p *DeveloperProfile) Name() values.PersonName                 { return p.name }
func (p *DeveloperProfile) Role() *values.RoleTitle                 { return p.role }
func (p *DeveloperProfile) Summary() *values.ProfileSummary         { return p.summary }
func (p *DeveloperProfile) Avatar() *values.Avatar                  { return p.avatar }
func (p *DeveloperProfile) Contact() values.ContactInfo             { return p.contact }
func (p *DeveloperProfile) Social() values.SocialLinks              { return p.social }
func (p *DeveloperProfile) Verification() values.VerificationStatus { return p.verification }
func (p *DeveloperProfile) OpenToWork() values.OpenToWorkStatus     { return p.openToWork }
func (p *DeveloperProfile) YearsOfExperience() values.YearsOfExperience {
	return p.years
}
func (p *DeveloperProfile) CreatedAt() time.Time { return p.createdAt }
func (p *DeveloperProfile) UpdatedAt() time.Time { return p.updatedAt }

// Skills возвращает копию списка навыков в порядке добавления.
func (p *DeveloperProfile) Skills() []values.SkillTag {
	return append([]values.SkillTag(nil), p.skills...)
}

// Projects возвращает проекты в порядке добавления.
func (p *DeveloperProfile) Projects() []*ProjectItem {
	return append([]*ProjectItem(nil), p.projects...)
}

// WorkExperience возвращает записи об опыте в порядке добавления.
func (p *DeveloperProfile) WorkExperience() []*WorkExperienceItem {
	return append([]*WorkExperienceItem(nil), p.workExperience...)
}

// Project ищет проект по идентификатору.
func (p *DeveloperProfile) Project(id ProjectID) (*ProjectItem, bool) {
	idx := p.projectIndex(id)
	if idx < 0 {
		return nil, false
	}
	return p.projects[idx], true
}

func (p *DeveloperProfile) ChangeName(name values.PersonName, now time.Time) {
	p.name = name
	p.touch(now)
}

// ChangeRole заменяет должность, nil очищает ее.
func (p *DeveloperProfile) ChangeRole(role *values.RoleTitle, now time.Time) {
	p.role = role
	p.touch(now)
}

// ChangeAvatar заменяет аватар, nil очищает его.
func (p *DeveloperProfile) ChangeAvatar(avatar *values.Avatar, now time.Time) {
	p.avatar = avatar
	p.touch(now)
}

func (p *DeveloperProfile) ChangeSummary(summary *values.ProfileSummary, now time.Time) {
	p.summary = summary
	p.touch(now)
}

func (p *DeveloperProfile) SetOpenToWork(status values.OpenToWorkStatus, now time.Time) {
	p.openToWork = status
	p.touch(now)
}

func (p *DeveloperProfile) UpdateYearsOfExperience(years values.YearsOfExperience, now time.Time) {
	p.years = years
	p.touch(now)
}

func (p *DeveloperProfile) SetVerified(status values.VerificationStatus, now time.Time) {
	p.verification = status
	p.touch(now)
}

func (p *DeveloperProfile) ChangeContact(contact values.ContactInfo, now time.Time) {
	p.contact = contact
	p.touch(now)
}

func (p *DeveloperProfile) ChangeSocialLinks(social values.SocialLinks, now time.Time) {
	p.social = social
	p.touch(now)
}

// ReplaceSkills заменяет навыки целиком, сохраняя порядок и дубликаты.
func (p *DeveloperProfile) ReplaceSkills(tags []values.SkillTag, now time.Time) error {
	if err := ReplaceList(&p.skills, tags, nil); err != nil {
		return err
	}
	p.touch(now)
	return nil
}

// AddProject добавляет проект в конец списка и возвращает его новый идентификатор.
func (p *DeveloperProfile) AddProject(details ProjectDetails, now time.Time) (ProjectID, error) {
	item, err := newProjectItem(details, now)
	if err != nil {
		return "", err
	}
	p.projects = append(p.projects, item)
	p.touch(now)
	return item.id, nil
}

// UpdateProject заменяет поля проекта, сохраняя его позицию и идентификатор.
func (p *DeveloperProfile) UpdateProject(id ProjectID, details ProjectDetails, now time.Time) error {
	idx := p.projectIndex(id)
	if idx < 0 {
		return notFound(ErrProjectNotFound, id.String())
	}
	if err := p.projects[idx].apply(details, now); err != nil {
		return err
	}
	p.touch(now)
	return nil
}

// SetProjectIcon заменяет только иконку проекта.
func (p *DeveloperProfile) SetProjectIcon(id ProjectID, icon *values.ProjectIcon, now time.Time) error {
	idx := p.projectIndex(id)
	if idx < 0 {
		return notFound(ErrProjectNotFound, id.String())
	}
	item := p.projects[idx]
	item.icon = icon
	item.updatedAt = now
	p.touch(now)
	return nil
}

func (p *DeveloperProfile) RemoveProject(id ProjectID, now time.Time) error {
	idx := p.projectIndex(id)
	if idx < 0 {
		return notFound(ErrProjectNotFound, id.String())
	}
	p.projects = append(p.projects[:idx:idx], p.projects[idx+1:]...)
	p.touch(now)
	return nil
}

// AddWorkExperience добавляет запись в конец списка.
func (p *DeveloperProfile) AddWorkExperience(details WorkExperienceDetails, now time.Time) (WorkExperienceID, error) {
	item, err := newWorkExperienceItem(details, now)
	if err != nil {
		return "", err
	}
	p.workExperience = append(p.workExperience, item)
	p.touch(now)
	return item.id, nil
}

func (p *DeveloperProfile) UpdateWorkExperience(id WorkExperienceID, details WorkExperienceDetails, now time.Time) error {
	idx := p.workExperienceIndex(id)
	if idx < 0 {
		return notFound(ErrWorkExperienceNotFound, id.String())
	}
	if err := p.workExperience[idx].apply(details, now); err != nil {
		return err
	}
	p.touch(now)
	return nil
}

func (p *DeveloperProfile) RemoveWorkExperience(id WorkExperienceID, now time.Time) error {
	idx := p.workExperienceIndex(id)
	if idx < 0 {
		return notFound(ErrWorkExperienceNotFound, id.String())
	}
	p.workExperience = append(p.workExperience[:idx:idx], p.workExperience[idx+1:]...)
	p.touch(now)
	return nil
}

func (p *DeveloperProfile) projectIndex(id ProjectID) int {
	for i, item := range p.projects {
		if item.id == id {
			return i
		}
	}
	return -1
}

func (p *DeveloperProfile) workExperienceIndex(id WorkExperienceID) int {
	for i, item := range p.workExperience {
		if item.id == id {
			return i
		}
	}
	return -1
}
