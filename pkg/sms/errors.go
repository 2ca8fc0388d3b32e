package sms

import "errors"

var (
	ErrSendFailed       = errors.New("sms: failed to send")
	ErrInvalidConfig    = errors.New("sms: invalid config")
	ErrInvalidMessage   = errors.New("sms: invalid message")
	ErrInvalidSignature = errors.New("sms: invalid signature")
)
