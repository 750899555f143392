package email

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	TemplateReservationConfirmed = "reservation_confirmed"
	TemplateReservationRejected  = "reservation_rejected"
)

var builtinTemplates = map[string]string{
	TemplateReservationConfirmed: `<p>Hello {{.CustomerName}},</p>
<p>Your table for {{.Guests}} at <strong>{{.Restaurant}}</strong> on {{.Date}} at {{.Time}} is confirmed.</p>`,
	TemplateReservationRejected: `<p>Hello {{.CustomerName}},</p>
<p>Unfortunately <strong>{{.Restaurant}}</strong> cannot accept your reservation for {{.Date}} at {{.Time}}.</p>`,
}

// TemplateManager holds parsed html templates. It is read-only after construction.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template, len(builtinTemplates))}
	for name, body := range builtinTemplates {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
