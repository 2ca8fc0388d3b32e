package alerts

import "errors"

var (
	ErrUnknownChannel = errors.New("unknown alert channel")
	ErrInvalidTarget  = errors.New("invalid alert target")
	ErrSinkNotSet     = errors.New("no sender configured for channel")
	ErrPublishFailed  = errors.New("failed to publish alert")
)
