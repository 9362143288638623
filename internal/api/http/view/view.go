package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

// Page names.
const (
	PageIndex     = "index"
	PageSignup    = "signup"
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageUpload    = "upload"
	PageError     = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{PageIndex, PageSignup, PageLogin, PageDashboard, PageUpload, PageError}

// Page is the data every template is executed with.
type Page struct {
	Title         string
	Authenticated bool
	Session       model.Session
	Flashes       []string
	// Form holds submitted values echoed back into a re-rendered form.
	Form    map[string]string
	Uploads []model.Upload
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates map[string]*template.Template
	logger    *logger.Logger
}

// New parses every page together with the shared layout.
func New(logger *logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatTime": formatTime,
		"humanSize":  humanSize,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render writes the named page with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("Renderer: unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.Error("Renderer: failed to execute template",
			"template", name,
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("Renderer: failed to write response", "error", err.Error())
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
