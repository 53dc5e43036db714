package entities

import (
	"time"

	"github.com/google/uuid"

	"devprofile/internal/profile/domain/values"
)

// ProjectID - идентификатор проекта внутри профиля.
type ProjectID string

func (id ProjectID) String() string { return string(id) }

// ProjectDetails - изменяемые поля проекта.
type ProjectDetails struct {
	Name        values.ProjectName
	Description *values.ProjectDescription
	Icon        *values.ProjectIcon
	Link        values.URL
	TechStack   []values.SkillTag
}

// ProjectItem - проект из портфолио разработчика.
type ProjectItem struct {
	id          ProjectID
	name        values.ProjectName
	description *values.ProjectDescription
	icon        *values.ProjectIcon
	link        values.URL
	techStack   []values.SkillTag
	updatedAt   time.Time
}

func newProjectItem(details ProjectDetails, now time.Time) (*ProjectItem, error) {
	item := &ProjectItem{id: ProjectID(uuid.NewString())}
	if err := item.apply(details, now); err != nil {
		return nil, err
	}
	return item, nil
}

func (p *ProjectItem) apply(details ProjectDetails, now time.Time) error {
	var stack []values.SkillTag
	if err := ReplaceList(&stack, details.TechStack, nil); err != nil {
		return err
	}
	p.name = details.Name
	p.description = details.Description
	p.icon = details.Icon
	p.link = details.Link
	p.techStack = stack
	p.updatedAt = now
	return nil
}

func (p *ProjectItem) ID() ProjectID                           { return p.id }
func (p *ProjectItem) Name() values.ProjectName                { return p.name }
func (p *ProjectItem) Description() *values.ProjectDescription { return p.description }
func (p *ProjectItem) Icon() *values.ProjectIcon               { return p.icon }
func (p *ProjectItem) Link() values.URL                        { return p.link }
func (p *ProjectItem) UpdatedAt() time.Time                    { return p.updatedAt }

func (p *ProjectItem) TechStack() []values.SkillTag {
	return append([]values.SkillTag(nil), p.techStack...)
}

// Details возвращает текущие поля проекта.
func (p *ProjectItem) Details() ProjectDetails {
	return ProjectDetails{
		Name:        p.name,
		Description: p.description,
		Icon:        p.icon,
		Link:        p.link,
		TechStack:   p.TechStack(),
	}
}
