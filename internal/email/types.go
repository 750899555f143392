package email

// Email is a single outgoing message
type Email struct {
	To       []string
	Subject  string
	Body     string // plain text
	HTMLBody string
}

// TemplateData is passed to html templates
type TemplateData map[string]interface{}
