// Package renderer строит HTML резюме и превращает его в PDF через Gotenberg.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"devprofile/internal/profile/app"
	"devprofile/internal/profile/domain/entities"
	"devprofile/internal/profile/ports/services"
)

//go:embed templates/resume.html
var templates embed.FS

const monthLayout = "Jan 2006"

// HTMLTemplate рендерит резюме встроенным шаблоном.
type HTMLTemplate struct {
	tmpl *template.Template
}

var _ services.ResumeTemplate = (*HTMLTemplate)(nil)

// NewHTMLTemplate разбирает встроенный шаблон.
func NewHTMLTemplate() (*HTMLTemplate, error) {
	tmpl, err := template.New("resume.html").
		Funcs(template.FuncMap{"period": formatPeriod}).
		ParseFS(templates, "templates/resume.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume template: %w", err)
	}
	return &HTMLTemplate{tmpl: tmpl}, nil
}

func (t *HTMLTemplate) Render(profile *entities.DeveloperProfile) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, app.ToProfileDTO(profile)); err != nil {
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}
	return buf.Bytes(), nil
}

func formatPeriod(start time.Time, end *time.Time) string {
	if end == nil {
		return start.Format(monthLayout) + " - present"
	}
	return start.Format(monthLayout) + " - " + end.Format(monthLayout)
}
