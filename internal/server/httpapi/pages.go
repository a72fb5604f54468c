package httpapi

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const (
	pageMessage   = "message"
	pageResetForm = "reset_form"
)

const pageTemplates = `
{{define "message"}}<h3>{{.}}</h3>{{end}}

{{define "reset_form"}}
<h2>Reset Your MediAxis Password</h2>
<form action="/update_password" method="POST">
    <input type="hidden" name="token" value="{{.}}">
    <input type="password" name="new_password" placeholder="Enter new password" required>
    <button type="submit">Update Password</button>
</form>
{{end}}
`

// pageRenderer serves the small HTML pages of the reset flow. Token values
// are escaped by html/template.
type pageRenderer struct {
	t *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{t: template.Must(template.New("pages").Parse(pageTemplates))}
}

func (r *pageRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
