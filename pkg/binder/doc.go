// Package binder decodes HTTP request data into typed request structs.
//
// Each binder is a func(r *http.Request, v any) error that fills the fields
// it owns and leaves the rest alone, so several can run over the same value:
//
//	type unsubscribeRequest struct {
//	    ID string `path:"id"`
//	}
//
//	r.Delete("/subscribers/{id}", handler.Wrap(h.unsubscribe,
//	    handler.WithBinders[handler.Context, unsubscribeRequest](binder.Path(chi.URLParam)),
//	))
//
// Available binders:
//
//   - JSON: strict body decoding with a size limit and control-character removal
//   - Query: `query:"name"` tags from the URL query string
//   - Path: `path:"name"` tags through a router-specific extractor
//
// Errors wrap the sentinels in errors.go so callers can map them to HTTP
// status codes with errors.Is.
package binder
