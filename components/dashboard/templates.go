package dashboard

import (
	"embed"
	"io"

	template "github.com/goliatone/go-template"
)

// Renderer executes a named page template. go-template's renderer satisfies it.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

//go:embed templates/dashboard.html
var pageTemplates embed.FS

// NewTemplateRenderer returns a renderer over the embedded dashboard page.
// The page expects the payload built by Controller.LayoutPayload.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(pageTemplates),
		template.WithBaseDir("templates"),
		template.WithExtension(".html"),
	)
}
