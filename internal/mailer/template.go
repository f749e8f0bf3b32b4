package mailer

import (
	"bytes"
	"html/template"
)

// Shared layout for admin notification emails.
var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; margin: 0; padding: 24px; background: #f4f6f8;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 6px; padding: 32px;">
      <h2 style="color: #1a2b4a; margin-top: 0;">{{.Title}}</h2>
      <p style="color: #3d4f66; line-height: 1.6;">{{.Body}}</p>
      <hr style="border: none; border-top: 1px solid #e3e8ee;">
      <p style="color: #8795a8; font-size: 12px;">
        You received this message from your account dashboard at
        <a href="https://{{.URL}}">{{.URL}}</a>.
      </p>
    </div>
  </body>
</html>
`))

// RenderNotification renders the shared notification email template.
func RenderNotification(title, body, url string) (string, error) {
	var buf bytes.Buffer
	err := notificationTmpl.Execute(&buf, struct {
		Title string
		Body  string
		URL   string
	}{Title: title, Body: body, URL: url})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
