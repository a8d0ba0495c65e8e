package mailer

import (
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/footmate/internal/domain/notification"
)

type compiled struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// Renderer executes the built-in email templates. Output buffers come from a
// shared pool.
type Renderer struct {
	templates map[notification.Template]compiled
}

func NewRenderer() (*Renderer, error) {
	out := make(map[notification.Template]compiled, len(templateSources))
	for name, src := range templateSources {
		html, err := htmltemplate.New(string(name)).Option("missingkey=zero").Parse(src.html)
		if err != nil {
			return nil, fmt.Errorf("parse %s html template: %w", name, err)
		}
		text, err := texttemplate.New(string(name)).Option("missingkey=zero").Parse(src.text)
		if err != nil {
			return nil, fmt.Errorf("parse %s text template: %w", name, err)
		}
		out[name] = compiled{subject: src.subject, html: html, text: text}
	}
	return &Renderer{templates: out}, nil
}

func (r *Renderer) Render(name notification.Template, data map[string]any) (notification.Rendered, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return notification.Rendered{}, fmt.Errorf("unknown email template %q", name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tpl.html.Execute(buf, data); err != nil {
		return notification.Rendered{}, fmt.Errorf("execute %s html template: %w", name, err)
	}
	html := buf.String()

	buf.Reset()
	if err := tpl.text.Execute(buf, data); err != nil {
		return notification.Rendered{}, fmt.Errorf("execute %s text template: %w", name, err)
	}

	return notification.Rendered{
		Subject: tpl.subject,
		HTML:    html,
		Text:    buf.String(),
	}, nil
}
