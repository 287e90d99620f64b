package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTpl = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1a1a2e;">
    <h2>Welcome to AstroCat, {{.Name}}!</h2>
    <p>Your account <b>{{.Username}}</b> is ready. You can now publish news
    posts and add star systems and celestial bodies to the catalog.</p>
    <p>Clear skies!</p>
  </body>
</html>
`))

// RenderWelcome renders the registration email for a new account.
func RenderWelcome(data map[string]any) (subject, text, html string, err error) {
	var buf bytes.Buffer
	if err = welcomeTpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	subject = "Welcome to AstroCat"
	text = fmt.Sprintf("Welcome to AstroCat, %v! Your account %v is ready.", data["Name"], data["Username"])
	return subject, text, buf.String(), nil
}
