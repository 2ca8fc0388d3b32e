package alerts

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/restock/pkg/email"
	"github.com/dmitrymomot/restock/pkg/email/templates"
	"github.com/dmitrymomot/restock/pkg/stock"
)

// EmailTag is attached to every restock e-mail for provider-side filtering.
const EmailTag = "restock"

// Email delivers restock alerts to one e-mail address.
type Email struct {
	to     string
	sender email.Sender
}

// NewEmail returns a subscriber that mails alerts to address through sender.
func NewEmail(address string, sender email.Sender) *Email {
	return &Email{to: address, sender: sender}
}

func (e *Email) Channel() string { return ChannelEmail }

// Target returns the recipient address.
func (e *Email) Target() string { return e.to }

func (e *Email) Receive(ctx context.Context, alert stock.Alert) error {
	html, err := templates.Render(ctx, templates.RestockEmail(templates.RestockParams{
		Resource: alert.Resource,
		Count:    alert.Count,
	}))
	if err != nil {
		return fmt.Errorf("render restock email: %w", err)
	}

	return e.sender.Send(ctx, email.Message{
		To:       e.to,
		Subject:  fmt.Sprintf("%s is back in stock", alert.Resource),
		HTMLBody: html,
		TextBody: EmailText(alert),
		Tag:      EmailTag,
	})
}

// EmailText is the plain-text body of a restock e-mail.
func EmailText(alert stock.Alert) string {
	return fmt.Sprintf("Good news, %s is back in stock!!! %d left.", alert.Resource, alert.Count)
}
