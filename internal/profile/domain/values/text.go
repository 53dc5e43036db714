package values

// Ограничения длины текстовых значений.
const (
	MaxRoleTitleLength          = 200
	MaxSummaryLength            = 5000
	MaxSkillTagLength           = 100
	MaxCompanyNameLength        = 200
	MaxProjectNameLength        = 200
	MaxProjectDescriptionLength = 2000
	MaxWorkDescriptionLength    = 4000
)

// RoleTitle - название должности.
type RoleTitle struct{ value string }

// NewRoleTitle создает обязательное название должности.
func NewRoleTitle(value string) (RoleTitle, error) {
	v, err := boundedText("role", value, MaxRoleTitleLength, true)
	return RoleTitle{value: v}, err
}

// TryRoleTitle возвращает nil для пустого значения.
func TryRoleTitle(value string) (*RoleTitle, error) {
	v, err := boundedText("role", value, MaxRoleTitleLength, false)
	if err != nil || v == "" {
		return nil, err
	}
	return &RoleTitle{value: v}, nil
}

func (r RoleTitle) String() string { return r.value }

// ProfileSummary - свободный текст "о себе".
type ProfileSummary struct{ value string }

// NewProfileSummary создает обязательное описание.
func NewProfileSummary(value string) (ProfileSummary, error) {
	v, err := boundedText("summary", value, MaxSummaryLength, true)
	return ProfileSummary{value: v}, err
}

// TryProfileSummary возвращает nil для пустого значения.
func TryProfileSummary(value string) (*ProfileSummary, error) {
	v, err := boundedText("summary", value, MaxSummaryLength, false)
	if err != nil || v == "" {
		return nil, err
	}
	return &ProfileSummary{value: v}, nil
}

func (s ProfileSummary) String() string { return s.value }

// SkillTag - навык или технология. Используется и для стека проектов.
type SkillTag struct{ value string }

// NewSkillTag создает непустой тег.
func NewSkillTag(value string) (SkillTag, error) {
	v, err := boundedText("skill", value, MaxSkillTagLength, true)
	return SkillTag{value: v}, err
}

// NewSkillTags создает теги в исходном порядке, без удаления дублей.
func NewSkillTags(raw []string) ([]SkillTag, error) {
	if raw == nil {
		return nil, nil
	}
	tags := make([]SkillTag, 0, len(raw))
	for _, r := range raw {
		tag, err := NewSkillTag(r)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (t SkillTag) String() string { return t.value }

// IsZero сообщает, что тег не задан.
func (t SkillTag) IsZero() bool { return t.value == "" }

// SkillStrings переводит теги обратно в строки.
func SkillStrings(tags []SkillTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.value
	}
	return out
}

// CompanyName - название компании.
type CompanyName struct{ value string }

func NewCompanyName(value string) (CompanyName, error) {
	v, err := boundedText("company", value, MaxCompanyNameLength, true)
	return CompanyName{value: v}, err
}

func (c CompanyName) String() string { return c.value }

// ProjectName - название проекта.
type ProjectName struct{ value string }

func NewProjectName(value string) (ProjectName, error) {
	v, err := boundedText("name", value, MaxProjectNameLength, true)
	return ProjectName{value: v}, err
}

func (p ProjectName) String() string { return p.value }

// ProjectDescription - описание проекта.
type ProjectDescription struct{ value string }

// TryProjectDescription возвращает nil для пустого значения.
func TryProjectDescription(value string) (*ProjectDescription, error) {
	v, err := boundedText("description", value, MaxProjectDescriptionLength, false)
	if err != nil || v == "" {
		return nil, err
	}
	return &ProjectDescription{value: v}, nil
}

func (p ProjectDescription) String() string { return p.value }

// WorkDescription - описание обязанностей на месте работы.
type WorkDescription struct{ value string }

// TryWorkDescription возвращает nil для пустого значения.
func TryWorkDescription(value string) (*WorkDescription, error) {
	v, err := boundedText("description", value, MaxWorkDescriptionLength, false)
	if err != nil || v == "" {
		return nil, err
	}
	return &WorkDescription{value: v}, nil
}

func (w WorkDescription) String() string { return w.value }
