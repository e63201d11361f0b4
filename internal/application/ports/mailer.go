package ports

import "context"

// Attachment a file attached to an outgoing mail.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mail an outgoing HTML message.
type Mail struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Mailer delivers mail. Adapters: SMTP (gomail) and a log-only mailer for development.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}
