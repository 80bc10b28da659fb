package mailer

// EmailJob is the JSON payload put on the RabbitMQ email queue. Either set
// Template (with Data) to render on the worker, or Subject plus Text/HTML
// for a pre-rendered message.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "universal", "login_notification", "verify_email", "forgot_password", "login_otp"
	Data     map[string]any `json:"data,omitempty"`
}
