package email

import (
	"embed"
	"html/template"
)

// Template names an HTML file under templates/.
type Template string

const (
	TemplatePlaceCreated Template = "place_created"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
