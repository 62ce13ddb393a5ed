// Package web embeds the HTML templates and static assets of the blog.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates static
var files embed.FS

const viewsDir = "templates/views"

var shared = []string{
	"templates/layouts/*.html",
	"templates/includes/*.html",
}

// Templates builds one template set per view, keyed by its path below
// templates/views, e.g. "blog/detail.html". Each set is the base layout plus
// the includes plus the view.
func Templates(funcs template.FuncMap) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	err := fs.WalkDir(files, viewsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		name := strings.TrimPrefix(p, viewsDir+"/")
		patterns := append(append([]string{}, shared...), p)
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(files, patterns...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Static serves the embedded assets below static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
