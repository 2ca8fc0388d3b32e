package binder

import "net/http"

// Query creates a binder for `query:"name"` tagged fields. Fields without a
// tag bind to their lowercased name; `query:"-"` skips the field.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
