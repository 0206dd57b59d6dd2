package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/etnz/costsheet"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available to every template.
var funcs = template.FuncMap{
	"cell":    cell,
	"num":     costsheet.FormatNumber,
	"percent": percent,
}

// RenderDocument renders the printable statement document to markdown.
func RenderDocument(doc costsheet.Document) string {
	partials := map[string]string{
		"document_info": "document_info.md",
		"document_rows": "document_rows.md",
	}
	return renderTemplate("document", "document.md", partials, doc)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, path.Join("templates", mainFile))
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, path.Join("templates", file))
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cellEscaper keeps a value inside its table cell. Line breaks become spaces,
// a table row is a single line and raw HTML is not rendered.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func cell(s string) string { return cellEscaper.Replace(s) }

// percent appends a percent sign to a defined rate.
func percent(rate string) string {
	if rate == costsheet.Sentinel {
		return rate
	}
	return rate + "%"
}
