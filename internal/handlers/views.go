package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Views renders the embedded HTML templates. Field values are escaped
// by html/template.
type Views struct {
	templates *template.Template
	log       logrus.FieldLogger
}

// NewViews parses all embedded templates.
func NewViews(log logrus.FieldLogger) (*Views, error) {
	t, err := template.New("views").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Views{templates: t, log: log}, nil
}

// Render executes the named template and writes it with the given
// status. Output is buffered so a template failure becomes a clean 500.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		v.log.WithError(err).WithField("template", name).Error("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		v.log.WithError(err).WithField("template", name).Warn("Failed to write response")
	}
}

// Page returns a handler serving a template that needs no data.
func (v *Views) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		v.Render(w, http.StatusOK, name, nil)
	}
}
