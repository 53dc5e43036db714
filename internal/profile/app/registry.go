package app

// Handlers - набор обработчиков, из которых собирается диспетчер.
type Handlers struct {
	Profiles       *ProfileHandlers
	Projects       *ProjectHandlers
	WorkExperience *WorkExperienceHandlers
	Media          *MediaHandlers
	Queries        *QueryHandlers
	Resume         *ResumeUseCase
}

// NewProfileDispatcher регистрирует все команды и запросы профиля.
func NewProfileDispatcher(h Handlers) *Dispatcher {
	d := NewDispatcher()

	Register(d, h.Profiles.CreateProfile)
	Register(d, h.Profiles.ReplaceProfile)
	Register(d, h.Profiles.UpdateHeader)
	Register(d, h.Profiles.UpdateSummary)
	Register(d, h.Profiles.UpdateContacts)
	Register(d, h.Profiles.ReplaceSkills)
	Register(d, h.Profiles.SetVerification)
	Register(d, h.Profiles.DeleteProfile)

	Register(d, h.Projects.AddProject)
	Register(d, h.Projects.UpdateProject)
	Register(d, h.Projects.RemoveProject)

	Register(d, h.WorkExperience.AddWorkExperience)
	Register(d, h.WorkExperience.UpdateWorkExperience)
	Register(d, h.WorkExperience.RemoveWorkExperience)

	Register(d, h.Media.UploadAvatar)
	Register(d, h.Media.UploadProjectImage)

	Register(d, h.Queries.GetProfile)
	Register(d, h.Queries.Catalog)
	Register(d, h.Queries.SearchCatalog)

	if h.Resume != nil {
		Register(d, h.Resume.GetResumePDF)
	}
	return d
}
