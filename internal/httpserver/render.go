package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// pageData assembles the fields every page shows: drained flashes, the
// current identity and the cart badge, merged with the handler's own data.
func pageData(c echo.Context, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{}
	if state := session.FromEchoContext(c); state != nil {
		data["Flashes"] = state.TakeFlashes()
		data["Identity"] = state.Identity
		data["CartSize"] = state.CartSize()
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
