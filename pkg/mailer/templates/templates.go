package templates

import (
	"bytes"
	"fmt"
	html "html/template"
	text "text/template"
)

// Template names understood by Render.
const (
	Welcome     = "welcome"
	NewFollower = "new_follower"
)

type def struct {
	subject string
	text    string
	html    string
}

var defs = map[string]def{
	Welcome: {
		subject: "Welcome to {{.AppName}}",
		text:    "Hi {{.Name}},\n\nYour account is ready. Log in and start following people you know.\n",
		html: `<html><body>
<h2>Welcome, {{.Name}}!</h2>
<p>Your account is ready. Log in and start following people you know.</p>
</body></html>`,
	},
	NewFollower: {
		subject: "{{.FollowerName}} started following you",
		text:    "Hi {{.Name}},\n\n{{.FollowerName}} (@{{.FollowerUsername}}) just started following you.\n",
		html: `<html><body>
<p>Hi {{.Name}},</p>
<p><strong>{{.FollowerName}}</strong> (@{{.FollowerUsername}}) just started following you.</p>
</body></html>`,
	},
}

// Render resolves a template name to subject, text and HTML bodies.
func Render(name string, data map[string]any) (subject, textBody, htmlBody string, err error) {
	d, ok := defs[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	if subject, err = renderText(d.subject, data); err != nil {
		return "", "", "", err
	}
	if textBody, err = renderText(d.text, data); err != nil {
		return "", "", "", err
	}
	if htmlBody, err = renderHTML(d.html, data); err != nil {
		return "", "", "", err
	}
	return subject, textBody, htmlBody, nil
}

func renderText(tpl string, data map[string]any) (string, error) {
	t, err := text.New("t").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(tpl string, data map[string]any) (string, error) {
	t, err := html.New("h").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
