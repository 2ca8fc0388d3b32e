// Package handler provides type-safe HTTP handlers with pluggable request
// binding and a uniform JSON response envelope.
//
// A HandlerFunc receives a Context and a request value filled by binders,
// and returns a Response:
//
//	type setCountRequest struct {
//	    Count *int `json:"count"`
//	}
//
//	func setCount(ctx handler.Context, req setCountRequest) handler.Response {
//	    if err := subject.SetCount(ctx, *req.Count); err != nil {
//	        return handler.JSONError(err)
//	    }
//	    return handler.JSON(view())
//	}
//
//	r.Put("/stock", handler.Wrap(setCount,
//	    handler.WithBinders[handler.Context, setCountRequest](binder.JSON()),
//	))
//
// Every JSON body has the shape {"data": ..., "error": {"code", "message",
// "details"}}. JSONError picks the status from the error: validator errors
// become 422 with per-field details, HTTPError values use their code, and
// binder errors become 400 or 415. Anything else is a 500.
package handler
