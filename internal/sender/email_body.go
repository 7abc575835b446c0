package sender

import (
	"bytes"
	"html/template"

	"herald/internal/models"
)

// emailTmpl renders the notification email body. Kept deliberately plain so
// the output is deterministic for a given notification.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 24px; background-color: #f5f5f5;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 24px; border-radius: 8px;">
    <h2 style="margin-top: 0; color: #222222;">{{.Title}}</h2>
{{- if .ImageURL}}
    <img src="{{.ImageURL}}" alt="" style="max-width: 100%; border-radius: 4px;"/>
{{- end}}
    <p style="color: #444444; line-height: 1.5;">{{.Body}}</p>
{{- if .ActionURL}}
    <a href="{{.ActionURL}}" style="display: inline-block; padding: 10px 20px; background-color: #2463eb; color: #ffffff; text-decoration: none; border-radius: 4px;">{{if .ActionLabel}}{{.ActionLabel}}{{else}}Open{{end}}</a>
{{- end}}
  </div>
</body>
</html>
`))

// RenderEmailBody produces the HTML body for an email delivery.
func RenderEmailBody(n *models.Notification) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
