package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records a single error under the key "error".
// A nil error yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Resource records the tracked resource name under the key "resource".
func Resource(name string) slog.Attr {
	return slog.String("resource", name)
}

// Count records an availability count under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// PreviousCount records the count before a change under the key "previous_count".
func PreviousCount(n int) slog.Attr {
	return slog.Int("previous_count", n)
}

// Channel records the delivery channel (email, sms, ...) under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// Target records the delivery target under the key "target".
func Target(target string) slog.Attr {
	return slog.String("target", target)
}

// AlertID records the alert identifier under the key "alert_id".
// If id is nil, it returns an empty Attr.
func AlertID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("alert_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Subscribers records a subscriber count under the key "subscribers".
func Subscribers(n int) slog.Attr {
	return slog.Int("subscribers", n)
}

// Duration records an elapsed time under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
