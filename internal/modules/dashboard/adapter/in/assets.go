package in

import (
	"embed"
	"html/template"
)

//go:embed web/index.html.tmpl web/app.js
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/index.html.tmpl"))

func appScript() []byte {
	data, err := webFS.ReadFile("web/app.js")
	if err != nil {
		return nil
	}
	return data
}
