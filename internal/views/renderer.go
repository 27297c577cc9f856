package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile  = "templates/layout.html"
	partialFile = "templates/shippings/order_line.html"
	fieldsFile  = "templates/shippings/form_fields.html"

	partialName = "shippings/order_line"
)

// sharedFiles are parsed into every page.
var sharedFiles = []string{layoutFile, partialFile, fieldsFile}

// Renderer renders the embedded page templates. Pages are wrapped in the
// shared layout; the order line partial is rendered on its own.
type Renderer struct {
	templates map[string]*template.Template
	entry     map[string]string
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		entry:     make(map[string]string),
	}

	partial, err := template.New(path.Base(partialFile)).Funcs(funcMap()).ParseFS(templateFS, partialFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", partialFile, err)
	}
	r.templates[partialName] = partial
	r.entry[partialName] = "order_line"

	err = fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || isShared(p) || !strings.HasSuffix(p, ".html") {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		patterns := append(append([]string{}, sharedFiles...), p)
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcMap()).ParseFS(templateFS, patterns...)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		r.templates[name] = tmpl
		r.entry[name] = "layout"
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, r.entry[name], data)
}

func isShared(p string) bool {
	for _, shared := range sharedFiles {
		if p == shared {
			return true
		}
	}
	return false
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(models.OrderDateLayout)
		},
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"statusSelected": func(current string, s entities.ShippingStatus) bool {
			if current == "" {
				return s == entities.ShippingStatusPending
			}
			return current == string(s)
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
}
