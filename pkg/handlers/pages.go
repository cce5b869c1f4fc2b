package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"
	"go.uber.org/zap"
)

// SectionNames lists the static section pages next to the homepage
var SectionNames = []string{"projects", "photofolio", "about"}

// SectionPages holds the compiled pug templates of the section pages
type SectionPages struct {
	names     []string
	templates map[string]*template.Template
}

// LoadSectionPages compiles <dir>/<name>.pug for every section name.
// dir is the pug root, so includes and extends resolve inside it.
func LoadSectionPages(dir string, names ...string) (*SectionPages, error) {
	if len(names) == 0 {
		names = SectionNames
	}
	opts := pug.Options{Dir: compiler.FsDir(dir)}

	pages := &SectionPages{templates: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		tmpl, err := pug.CompileFile(name+".pug", opts)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s page: %w", name, err)
		}
		pages.names = append(pages.names, name)
		pages.templates[name] = tmpl
	}
	return pages, nil
}

// Names returns the loaded section names in load order
func (p *SectionPages) Names() []string {
	return append([]string(nil), p.names...)
}

// SectionHandler serves one compiled section page
func (h *Handler) SectionHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tmpl, ok := h.pages.templates[name]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, nil); err != nil {
			h.log.Error("failed to render section page", zap.String("page", name), zap.Error(err))
		}
	}
}
