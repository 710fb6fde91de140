package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is the plain-text fallback; if Template is set the worker renders the
// HTML body from the named template with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "verify_email", "welcome", "order_confirmation"
	Data     map[string]any `json:"data,omitempty"`
}
