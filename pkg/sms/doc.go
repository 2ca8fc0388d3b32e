// Package sms delivers restock alerts as text messages.
//
// GatewayClient posts each message as JSON to an HTTP SMS gateway and signs the
// request with HMAC-SHA256 so the gateway can authenticate it:
//
//	X-Signature:  hex(HMAC-SHA256(secret, timestamp + "." + body))
//	X-Timestamp:  unix seconds
//	X-Message-ID: uuid of the message
//
// Gateways verify requests with VerifySignature. Each Send makes exactly one
// attempt; 4xx and 5xx responses are reported as ErrSendFailed.
//
// LogSender writes messages to a slog.Logger and is meant for local runs.
package sms
