package entities

import (
	"time"

	"github.com/google/uuid"

	"devprofile/internal/profile/domain/values"
)

// WorkExperienceID - идентификатор места работы внутри профиля.
type WorkExperienceID string

func (id WorkExperienceID) String() string { return string(id) }

// WorkExperienceDetails - изменяемые поля места работы.
type WorkExperienceDetails struct {
	Company     values.CompanyName
	Location    *values.Location
	Role        values.RoleTitle
	Description *values.WorkDescription
	Period      values.Period
	TechStack   []values.SkillTag
}

// WorkExperienceItem - запись об опыте работы.
type WorkExperienceItem struct {
	id          WorkExperienceID
	company     values.CompanyName
	location    *values.Location
	role        values.RoleTitle
	description *values.WorkDescription
	period      values.Period
	techStack   []values.SkillTag
	updatedAt   time.Time
}

func newWorkExperienceItem(details WorkExperienceDetails, now time.Time) (*WorkExperienceItem, error) {
	item := &WorkExperienceItem{id: WorkExperienceID(uuid.NewString())}
	if err := item.apply(details, now); err != nil {
		return nil, err
	}
	return item, nil
}

func (w *WorkExperienceItem) apply(details WorkExperienceDetails, now time.Time) error {
	var stack []values.SkillTag
	if err := ReplaceList(&stack, details.TechStack, nil); err != nil {
		return err
	}
	w.company = details.Company
	w.location = details.Location
	w.role = details.Role
	w.description = details.Description
	w.period = details.Period
	w.techStack = stack
	w.updatedAt = now
	return nil
}

func (w *WorkExperienceItem) ID() WorkExperienceID                 { return w.id }
func (w *WorkExperienceItem) Company() values.CompanyName          { return w.company }
func (w *WorkExperienceItem) Location() *values.Location           { return w.location }
func (w *WorkExperienceItem) Role() values.RoleTitle               { return w.role }
func (w *WorkExperienceItem) Description() *values.WorkDescription { return w.description }
func (w *WorkExperienceItem) Period() values.Period                { return w.period }
func (w *WorkExperienceItem) UpdatedAt() time.Time                 { return w.updatedAt }

func (w *WorkExperienceItem) TechStack() []values.SkillTag {
	return append([]values.SkillTag(nil), w.techStack...)
}

// Details возвращает текущие поля записи.
func (w *WorkExperienceItem) Details() WorkExperienceDetails {
	return WorkExperienceDetails{
		Company:     w.company,
		Location:    w.location,
		Role:        w.role,
		Description: w.description,
		Period:      w.period,
		TechStack:   w.TechStack(),
	}
}
