package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/restock/pkg/validator"
)

// Sender delivers a single e-mail message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound e-mail.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// IsValidAddress reports whether addr is a bare, deliverable address.
func IsValidAddress(addr string) bool {
	return validator.IsEmail(addr)
}

// Validate checks the fields every sender needs.
func (m Message) Validate() error {
	if err := validator.Apply(
		validator.RequiredString("to", m.To),
		validator.ValidEmail("to", m.To),
		validator.RequiredString("subject", m.Subject),
		validator.Custom("body", "html or text body is required", "validation.required", func() bool {
			return strings.TrimSpace(m.HTMLBody) != "" || strings.TrimSpace(m.TextBody) != ""
		}),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}
