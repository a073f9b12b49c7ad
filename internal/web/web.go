// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "Rs. " + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"month": func(t time.Time) string { return t.Format("January 2006") },
	"neg":   func(d decimal.Decimal) bool { return d.IsNegative() },
	"dict":  dict,
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// Templates parses every page together with the shared partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded static directory rooted at its contents.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
