package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
	"github.com/inkwell-press/inkwell/web"
)

// Engine renders HTML templates parsed once at startup from the
// embedded web filesystem.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across every rendered page.
type TemplateData struct {
	Title       string
	CurrentUser *models.User
	Flashes     []string
	CurrentPath string
	Data        any
}

func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}

			return t.Format("02 Jan 2006 15:04")
		},
		"can": func(u *models.User, p int) bool {
			return u.Can(models.Permission(p))
		},
	}

	tpl, err := template.New("root").Funcs(funcMap).
		ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates error: %w", err)
	}

	return &Engine{templates: tpl}, nil
}

// Render executes a named page template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return e.templates.ExecuteTemplate(w, name, data)
}
