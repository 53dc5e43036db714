package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/domain/values"
)

var created = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func mustProfile(t *testing.T) *entities.DeveloperProfile {
	t.Helper()

	name, err := values.NewPersonName("Ada", "Lovelace")
	require.NoError(t, err)
	email, err := values.NewEmailAddress("ada@example.com")
	require.NoError(t, err)
	contact, err := values.NewContactInfo(nil, email, nil, nil)
	require.NoError(t, err)

	return entities.CreateDeveloperProfile("user-1", entities.ProfileDetails{
		Name:         name,
		Contact:      contact,
		Verification: values.NotVerified,
	}, created)
}

func mustTags(t *testing.T, raw ...string) []values.SkillTag {
	t.Helper()
	tags, err := values.NewSkillTags(raw)
	require.NoError(t, err)
	return tags
}

func projectDetails(t *testing.T, name string) entities.ProjectDetails {
	t.Helper()
	pn, err := values.NewProjectName(name)
	require.NoError(t, err)
	link, err := values.NewURL("https://github.com/ada/" + name)
	require.NoError(t, err)
	return entities.ProjectDetails{Name: pn, Link: link, TechStack: mustTags(t, "Go", "Postgres")}
}

func workDetails(t *testing.T, company string) entities.WorkExperienceDetails {
	t.Helper()
	c, err := values.NewCompanyName(company)
	require.NoError(t, err)
	role, err := values.NewRoleTitle("Engineer")
	require.NoError(t, err)
	period, err := values.NewPeriod(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return entities.WorkExperienceDetails{Company: c, Role: role, Period: period}
}

func TestCreateDeveloperProfile(t *testing.T) {
	p := mustProfile(t)

	assert.Equal(t, entities.DeveloperID("user-1"), p.ID())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, p.CreatedAt(), p.UpdatedAt())
	assert.Empty(t, p.Skills())
	assert.Empty(t, p.Projects())
	assert.Equal(t, 0, p.YearsOfExperience().Int())
	assert.Nil(t, p.Role())
}

func TestChangeSummaryTouchesOnlyUpdatedAt(t *testing.T) {
	p := mustProfile(t)
	later := created.Add(time.Hour)

	summary, err := values.TryProfileSummary("Compilers and analytical engines")
	require.NoError(t, err)
	p.ChangeSummary(summary, later)

	assert.Equal(t, later, p.UpdatedAt())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, "Compilers and analytical engines", p.Summary().String())
}

func TestNarrowSettersTouchUpdatedAt(t *testing.T) {
	p := mustProfile(t)
	step := created

	next := func() time.Time {
		step = step.Add(time.Minute)
		return step
	}

	name, err := values.NewPersonName("Augusta", "King")
	require.NoError(t, err)
	p.ChangeName(name, next())
	assert.Equal(t, step, p.UpdatedAt())

	role, err := values.TryRoleTitle("Staff Engineer")
	require.NoError(t, err)
	p.ChangeRole(role, next())
	assert.Equal(t, step, p.UpdatedAt())

	p.ChangeRole(nil, next())
	assert.Nil(t, p.Role())

	p.SetOpenToWork(values.NewOpenToWorkStatus(true), next())
	assert.True(t, p.OpenToWork().IsOpen())

	years, err := values.NewYearsOfExperience(7)
	require.NoError(t, err)
	p.UpdateYearsOfExperience(years, next())
	assert.Equal(t, 7, p.YearsOfExperience().Int())

	p.SetVerified(values.Premium, next())
	assert.Equal(t, values.Premium, p.Verification())

	avatar, err := values.TryAvatar("https://cdn.example.com/ada.png")
	require.NoError(t, err)
	p.ChangeAvatar(avatar, next())
	p.ChangeAvatar(nil, next())
	assert.Nil(t, p.Avatar())

	social, err := values.TrySocialLinks("", "https://github.com/ada", "", "")
	require.NoError(t, err)
	p.ChangeSocialLinks(social, next())
	assert.Equal(t, step, p.UpdatedAt())
	assert.Equal(t, created, p.CreatedAt())
}

func TestReplaceSkillsPreservesOrderAndDuplicates(t *testing.T) {
	p := mustProfile(t)

	require.NoError(t, p.ReplaceSkills(mustTags(t, "Go", "Go", "Rust"), created.Add(time.Second)))

	assert.Equal(t, []string{"Go", "Go", "Rust"}, values.SkillStrings(p.Skills()))
	assert.Equal(t, created.Add(time.Second), p.UpdatedAt())
}

func TestReplaceSkillsRejectsZeroTag(t *testing.T) {
	p := mustProfile(t)
	require.NoError(t, p.ReplaceSkills(mustTags(t, "Go"), created))

	err := p.ReplaceSkills([]values.SkillTag{mustTags(t, "Rust")[0], {}}, created.Add(time.Hour))

	require.ErrorIs(t, err, entities.ErrNullElement)
	assert.Equal(t, []string{"Go"}, values.SkillStrings(p.Skills()))
	assert.Equal(t, created, p.UpdatedAt())
}

func TestProjectLifecycle(t *testing.T) {
	p := mustProfile(t)

	firstID, err := p.AddProject(projectDetails(t, "engine"), created.Add(time.Minute))
	require.NoError(t, err)
	secondID, err := p.AddProject(projectDetails(t, "notes"), created.Add(2*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	updated := projectDetails(t, "engine-v2")
	require.NoError(t, p.UpdateProject(firstID, updated, created.Add(3*time.Minute)))

	projects := p.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, firstID, projects[0].ID(), "update keeps position")
	assert.Equal(t, "engine-v2", projects[0].Name().String())
	assert.Equal(t, created.Add(3*time.Minute), projects[0].UpdatedAt())

	require.NoError(t, p.RemoveProject(firstID, created.Add(4*time.Minute)))
	require.Len(t, p.Projects(), 1)
	assert.Equal(t, secondID, p.Projects()[0].ID())

	thirdID, err := p.AddProject(projectDetails(t, "engine"), created.Add(5*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, firstID, thirdID, "removed ids are not reused")
}

func TestRemoveProjectUnknownID(t *testing.T) {
	p := mustProfile(t)
	_, err := p.AddProject(projectDetails(t, "engine"), created.Add(time.Minute))
	require.NoError(t, err)
	before := p.Projects()
	stamp := p.UpdatedAt()

	err = p.RemoveProject("missing", created.Add(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Equal(t, before, p.Projects())
	assert.Equal(t, stamp, p.UpdatedAt())

	var domainErr *entities.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, entities.KindNotFound, domainErr.Kind)
}

func TestUpdateProjectUnknownID(t *testing.T) {
	p := mustProfile(t)

	err := p.UpdateProject("missing", projectDetails(t, "x"), created)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)

	err = p.SetProjectIcon("missing", nil, created)
	assert.ErrorIs(t, err, entities.ErrProjectNotFound)
}

func TestSetProjectIcon(t *testing.T) {
	p := mustProfile(t)
	id, err := p.AddProject(projectDetails(t, "engine"), created)
	require.NoError(t, err)

	icon, err := values.TryProjectIcon("https://cdn.example.com/icon.png")
	require.NoError(t, err)
	require.NoError(t, p.SetProjectIcon(id, icon, created.Add(time.Hour)))

	item, ok := p.Project(id)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/icon.png", item.Icon().String())
	assert.Equal(t, "engine", item.Name().String())
	assert.Equal(t, created.Add(time.Hour), p.UpdatedAt())
}

func TestWorkExperienceLifecycle(t *testing.T) {
	p := mustProfile(t)

	id, err := p.AddWorkExperience(workDetails(t, "Analytical Engines Ltd"), created)
	require.NoError(t, err)

	details := workDetails(t, "Difference Engines Ltd")
	require.NoError(t, p.UpdateWorkExperience(id, details, created.Add(time.Hour)))
	assert.Equal(t, "Difference Engines Ltd", p.WorkExperience()[0].Company().String())

	err = p.UpdateWorkExperience("missing", details, created.Add(2*time.Hour))
	assert.ErrorIs(t, err, entities.ErrWorkExperienceNotFound)

	err = p.RemoveWorkExperience("missing", created.Add(2*time.Hour))
	assert.ErrorIs(t, err, entities.ErrWorkExperienceNotFound)
	assert.Len(t, p.WorkExperience(), 1)

	require.NoError(t, p.RemoveWorkExperience(id, created.Add(3*time.Hour)))
	assert.Empty(t, p.WorkExperience())
	assert.Equal(t, created.Add(3*time.Hour), p.UpdatedAt())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p := mustProfile(t)
	require.NoError(t, p.ReplaceSkills(mustTags(t, "Go", "Rust"), created.Add(time.Minute)))
	projectID, err := p.AddProject(projectDetails(t, "engine"), created.Add(2*time.Minute))
	require.NoError(t, err)
	workID, err := p.AddWorkExperience(workDetails(t, "Engines"), created.Add(3*time.Minute))
	require.NoError(t, err)

	restored, err := entities.RestoreDeveloperProfile(p.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, p.Snapshot(), restored.Snapshot())
	assert.Equal(t, projectID, restored.Projects()[0].ID())
	assert.Equal(t, workID, restored.WorkExperience()[0].ID())
	assert.Equal(t, created, restored.CreatedAt())
	assert.Equal(t, created.Add(3*time.Minute), restored.UpdatedAt())
}
