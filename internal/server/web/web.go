// Package web holds the server-rendered pages: embedded templates, the page
// model and a gin renderer that pairs each page with the shared layout.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/i18n"
)

//go:embed templates
var Files embed.FS

// ContentGlobs are the theme content globs relative to Files.
var ContentGlobs = []string{"templates/**/*.html"}

// Pages lists the renderable page names.
var Pages = []string{"index", "register", "login", "dashboard", "error"}

// Page is the data every template receives. Title is a message key.
type Page struct {
	Lang          string
	Title         string
	StylesheetURL string
	CSRF          string
	Account       *accounts.Account

	Flash  string
	Form   map[string]string
	Errors map[string]string

	Message string

	Accounts []accounts.Account
	Total    int
	NextPage int
}

var funcs = template.FuncMap{
	"t": i18n.T,
}

// Renderer implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(Files, "templates/layout.html", "templates/pages/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["error"]
		data = Page{Lang: i18n.LangEN, Title: "error.title", Message: "unknown page " + name}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
