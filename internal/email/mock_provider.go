package email

import "sync"

// MockProvider records messages instead of sending them. Used when SMTP is
// not configured and in tests.
type MockProvider struct {
	mu        sync.Mutex
	templates *TemplateManager
	Sent      []Email
}

func NewMockProvider() *MockProvider {
	tm, _ := NewTemplateManager()
	return &MockProvider{templates: tm}
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *email)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	html, err := m.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return m.Send(&Email{To: to, Subject: subject, HTMLBody: html})
}

// Messages returns a snapshot of what was sent
func (m *MockProvider) Messages() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.Sent))
	copy(out, m.Sent)
	return out
}
