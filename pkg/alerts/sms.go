package alerts

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/restock/pkg/sms"
	"github.com/dmitrymomot/restock/pkg/stock"
)

// SMS delivers restock alerts to one phone number.
type SMS struct {
	to     string
	sender sms.Sender
}

// NewSMS returns a subscriber that texts alerts to number through sender.
func NewSMS(number string, sender sms.Sender) *SMS {
	return &SMS{to: number, sender: sender}
}

func (s *SMS) Channel() string { return ChannelSMS }

// Target returns the recipient number.
func (s *SMS) Target() string { return s.to }

func (s *SMS) Receive(ctx context.Context, alert stock.Alert) error {
	return s.sender.Send(ctx, sms.Message{To: s.to, Body: SMSText(alert)})
}

// SMSText is the body of a restock text message.
func SMSText(alert stock.Alert) string {
	return fmt.Sprintf("Stock is back again!!! %s: %d left", alert.Resource, alert.Count)
}
