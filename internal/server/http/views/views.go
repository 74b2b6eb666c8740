// Package views holds the HTML templates compiled into the binary.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Templates parses all embedded view templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "*.tmpl"))
}
