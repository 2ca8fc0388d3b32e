package sms

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/restock/pkg/validator"
)

// MaxBodyLength is the longest body accepted, ten concatenated segments.
const MaxBodyLength = 1530

// Sender delivers a single text message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound text message.
type Message struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// IsValidNumber reports whether number is an international phone number.
// Spaces and dashes are allowed as separators.
func IsValidNumber(number string) bool {
	return validator.IsPhone(number)
}

// Validate checks recipient and body.
func (m Message) Validate() error {
	if err := validator.Apply(
		validator.RequiredString("to", m.To),
		validator.ValidPhone("to", m.To),
		validator.RequiredString("body", m.Body),
		validator.MaxLenString("body", m.Body, MaxBodyLength),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}
