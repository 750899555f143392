package app

import (
	"restaurant_backend/internal/email"
	"restaurant_backend/internal/logger"
)

// logMailer stands in for SMTP when no host is configured: templates are
// still rendered so broken ones surface, but nothing leaves the process.
type logMailer struct {
	templates *email.TemplateManager
}

func newLogMailer() (*logMailer, error) {
	tm, err := email.NewTemplateManager()
	if err != nil {
		return nil, err
	}
	return &logMailer{templates: tm}, nil
}

func (m *logMailer) Send(msg *email.Email) error {
	logger.Info("Email not sent, SMTP is not configured", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *logMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	html, err := m.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return m.Send(&email.Email{To: to, Subject: subject, HTMLBody: html})
}
