package entities

import (
	"time"

	"devprofile/internal/profile/domain/values"
)

// ProjectSnapshot - сохраненное состояние проекта.
type ProjectSnapshot struct {
	ID        ProjectID
	Details   ProjectDetails
	UpdatedAt time.Time
}

// WorkExperienceSnapshot - сохраненное состояние записи об опыте.
type WorkExperienceSnapshot struct {
	ID        WorkExperienceID
	Details   WorkExperienceDetails
	UpdatedAt time.Time
}

// ProfileSnapshot - полное состояние агрегата для хранилищ.
type ProfileSnapshot struct {
	ID             DeveloperID
	Details        ProfileDetails
	Skills         []values.SkillTag
	Projects       []ProjectSnapshot
	WorkExperience []WorkExperienceSnapshot
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Snapshot возвращает копию состояния агрегата.
func (p *DeveloperProfile) Snapshot() ProfileSnapshot {
	years := p.years
	s := ProfileSnapshot{
		ID: p.id,
		Details: ProfileDetails{
			Name:              p.name,
			Role:              p.role,
			Summary:           p.summary,
			Avatar:            p.avatar,
			Contact:           p.contact,
			Social:            p.social,
			Verification:      p.verification,
			OpenToWork:        p.openToWork,
			YearsOfExperience: &years,
		},
		Skills:         p.Skills(),
		Projects:       make([]ProjectSnapshot, 0, len(p.projects)),
		WorkExperience: make([]WorkExperienceSnapshot, 0, len(p.workExperience)),
		CreatedAt:      p.createdAt,
		UpdatedAt:      p.updatedAt,
	}
	for _, item := range p.projects {
		s.Projects = append(s.Projects, ProjectSnapshot{ID: item.id, Details: item.Details(), UpdatedAt: item.updatedAt})
	}
	for _, item := range p.workExperience {
		s.WorkExperience = append(s.WorkExperience, WorkExperienceSnapshot{ID: item.id, Details: item.Details(), UpdatedAt: item.updatedAt})
	}
	return s
}

// RestoreDeveloperProfile восстанавливает агрегат из хранилища без генерации новых идентификаторов.
func RestoreDeveloperProfile(s ProfileSnapshot) (*DeveloperProfile, error) {
	p := CreateDeveloperProfile(s.ID, s.Details, s.CreatedAt)
	p.updatedAt = s.UpdatedAt

	if err := ReplaceList(&p.skills, s.Skills, nil); err != nil {
		return nil, err
	}

	for _, ps := range s.Projects {
		item := &ProjectItem{id: ps.ID}
		if err := item.apply(ps.Details, ps.UpdatedAt); err != nil {
			return nil, err
		}
		p.projects = append(p.projects, item)
	}
	for _, ws := range s.WorkExperience {
		item := &WorkExperienceItem{id: ws.ID}
		if err := item.apply(ws.Details, ws.UpdatedAt); err != nil {
			return nil, err
		}
		p.workExperience = append(p.workExperience, item)
	}
	return p, nil
}
