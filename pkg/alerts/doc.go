// Package alerts provides the concrete stock.Subscriber variants: e-mail, SMS,
// a live in-process feed for server-sent events, and a Redis stream publisher.
//
// Each variant reports its channel name through Channel so delivery metrics
// and logs can be labelled:
//
//	subject.Register(alerts.NewEmail("jane@example.com", mailer))
//	subject.Register(alerts.NewSMS("+15550100", texter))
//	subject.Register(feed)
//
// Factory builds e-mail and SMS subscribers from a (channel, target) pair,
// which is how the HTTP layer creates them.
package alerts
