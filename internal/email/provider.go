package email

// Provider sends mail. Implementations must be safe for concurrent use.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders templateName with data as the HTML body
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}
