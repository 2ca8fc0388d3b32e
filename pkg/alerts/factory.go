package alerts

import (
	"fmt"

	"github.com/dmitrymomot/restock/pkg/email"
	"github.com/dmitrymomot/restock/pkg/sanitizer"
	"github.com/dmitrymomot/restock/pkg/sms"
	"github.com/dmitrymomot/restock/pkg/stock"
	"github.com/dmitrymomot/restock/pkg/validator"
)

// Targeted is implemented by subscribers bound to a single recipient.
type Targeted interface {
	stock.Subscriber
	Channel() string
	Target() string
}

// Factory creates per-recipient subscribers for the channels it has senders for.
type Factory struct {
	Email email.Sender
	SMS   sms.Sender
}

// Channels lists the channels Factory can build subscribers for.
var Channels = []string{ChannelEmail, ChannelSMS}

// New builds a subscriber for channel and target. The channel is matched
// case-insensitively, e-mail targets are normalised, and targets are
// validated against the channel's address format. Validation failures wrap
// validator.ValidationErrors.
func (f Factory) New(channel, target string) (Targeted, error) {
	channel = sanitizer.TrimToLower(channel)
	target = sanitizer.Trim(target)

	if err := validator.Apply(
		validator.OneOfString("channel", channel, Channels),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownChannel, err)
	}

	switch channel {
	case ChannelEmail:
		if f.Email == nil {
			return nil, fmt.Errorf("%w: %s", ErrSinkNotSet, ChannelEmail)
		}
		target = sanitizer.NormalizeEmail(target)
		if err := validator.Apply(
			validator.RequiredString("target", target),
			validator.ValidEmail("target", target),
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		return NewEmail(target, f.Email), nil
	default:
		if f.SMS == nil {
			return nil, fmt.Errorf("%w: %s", ErrSinkNotSet, ChannelSMS)
		}
		if err := validator.Apply(
			validator.RequiredString("target", target),
			validator.ValidPhone("target", target),
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		return NewSMS(target, f.SMS), nil
	}
}
