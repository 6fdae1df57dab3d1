package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Views renders HTML pages from a shared base layout.
//
// Templates are parsed lazily and cached. In watch mode the cache is
// invalidated when the template directory changes on disk, so edits
// show up on the next request without a restart.
type Views struct {
	fsys     fs.FS
	prefix   string
	currency string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewViews creates a Views rendering the embedded templates.
func NewViews(currency string) *Views {
	return &Views{
		fsys:     embeddedTemplates,
		prefix:   "templates/",
		currency: currency,
		cache:    make(map[string]*template.Template),
	}
}

// NewViewsFromDir creates a Views rendering templates from a directory
// on disk. Used in watch mode.
func NewViewsFromDir(fsys fs.FS, currency string) *Views {
	return &Views{
		fsys:     fsys,
		currency: currency,
		cache:    make(map[string]*template.Template),
	}
}

// Invalidate drops all cached templates.
func (v *Views) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache = make(map[string]*template.Template)
}

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(amount float64) string {
			return fmt.Sprintf("%s%.2f", v.currency, amount)
		},
		"fmtDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}
}

func (v *Views) load(page string) (*template.Template, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t, ok := v.cache[page]; ok {
		return t, nil
	}

	t, err := template.New("base.html").Funcs(v.funcs()).ParseFS(
		v.fsys,
		v.prefix+"base.html",
		v.prefix+page,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
	}

	v.cache[page] = t
	return t, nil
}

// Render writes the named page into w using the base layout.
func (v *Views) Render(w io.Writer, page string, data any) error {
	if !strings.HasSuffix(page, ".html") {
		page += ".html"
	}
	t, err := v.load(page)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	return nil
}
