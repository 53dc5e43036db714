package app

import (
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
)

// Функции построения объектов-значений из входных данных.
// Все ошибки здесь - *values.ValidationError.

func buildContact(in ContactInput) (values.ContactInfo, error) {
	location, err := values.TryLocation(in.City, in.Country)
	if err != nil {
		return values.ContactInfo{}, err
	}
	email, err := values.NewEmailAddress(in.Email)
	if err != nil {
		return values.ContactInfo{}, err
	}
	phone, err := values.TryPhoneNumber(in.Phone)
	if err != nil {
		return values.ContactInfo{}, err
	}
	website, err := values.TryURL(in.Website)
	if err != nil {
		return values.ContactInfo{}, err
	}
	return values.NewContactInfo(location, email, phone, website)
}

func buildSocial(in SocialInput) (values.SocialLinks, error) {
	return values.TrySocialLinks(in.LinkedIn, in.GitHub, in.Telegram, in.Twitter)
}

func buildYears(raw *int) (*values.YearsOfExperience, error) {
	if raw == nil {
		return nil, nil
	}
	years, err := values.NewYearsOfExperience(*raw)
	if err != nil {
		return nil, err
	}
	return &years, nil
}

func buildProfile(in ProfileInput) (entities.ProfileDetails, []values.SkillTag, error) {
	var details entities.ProfileDetails

	name, err := values.NewPersonName(in.FirstName, in.LastName)
	if err != nil {
		return details, nil, err
	}
	role, err := values.TryRoleTitle(in.Role)
	if err != nil {
		return details, nil, err
	}
	summary, err := values.TryProfileSummary(in.Summary)
	if err != nil {
		return details, nil, err
	}
	avatar, err := values.TryAvatar(in.AvatarURL)
	if err != nil {
		return details, nil, err
	}
	contact, err := buildContact(in.Contact)
	if err != nil {
		return details, nil, err
	}
	social, err := buildSocial(in.Social)
	if err != nil {
		return details, nil, err
	}
	years, err := buildYears(in.YearsOfExperience)
	if err != nil {
		return details, nil, err
	}
	skills, err := values.NewSkillTags(in.Skills)
	if err != nil {
		return details, nil, err
	}

	details = entities.ProfileDetails{
		Name:              name,
		Role:              role,
		Summary:           summary,
		Avatar:            avatar,
		Contact:           contact,
		Social:            social,
		Verification:      values.NotVerified,
		OpenToWork:        values.NewOpenToWorkStatus(in.OpenToWork),
		YearsOfExperience: years,
	}
	return details, skills, nil
}

func buildProject(in ProjectInput) (entities.ProjectDetails, error) {
	name, err := values.NewProjectName(in.Name)
	if err != nil {
		return entities.ProjectDetails{}, err
	}
	description, err := values.TryProjectDescription(in.Description)
	if err != nil {
		return entities.ProjectDetails{}, err
	}
	icon, err := values.TryProjectIcon(in.IconURL)
	if err != nil {
		return entities.ProjectDetails{}, err
	}
	link, err := values.NewURL(in.Link)
	if err != nil {
		return entities.ProjectDetails{}, err
	}
	stack, err := values.NewSkillTags(in.TechStack)
	if err != nil {
		return entities.ProjectDetails{}, err
	}
	return entities.ProjectDetails{Name: name, Description: description, Icon: icon, Link: link, TechStack: stack}, nil
}

func buildWorkExperience(in WorkExperienceInput) (entities.WorkExperienceDetails, error) {
	company, err := values.NewCompanyName(in.Company)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	location, err := values.TryLocation(in.City, in.Country)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	role, err := values.NewRoleTitle(in.Role)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	description, err := values.TryWorkDescription(in.Description)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	period, err := values.NewPeriod(in.StartDate, in.EndDate)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	stack, err := values.NewSkillTags(in.TechStack)
	if err != nil {
		return entities.WorkExperienceDetails{}, err
	}
	return entities.WorkExperienceDetails{
		Company:     company,
		Location:    location,
		Role:        role,
		Description: description,
		Period:      period,
		TechStack:   stack,
	}, nil
}
