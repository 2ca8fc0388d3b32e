package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restock/pkg/binder"
	"github.com/dmitrymomot/restock/pkg/handler"
	"github.com/dmitrymomot/restock/pkg/validator"
)

type countRequest struct {
	Count *int `json:"count"`
}

type brokenResponse struct{}

func (brokenResponse) Render(http.ResponseWriter, *http.Request) error {
	return errors.New("render failed")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body struct {
		Data  json.RawMessage      `json:"data"`
		Error *handler.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	resp := handler.JSONResponse{Error: body.Error}
	if len(body.Data) > 0 {
		resp.Data = body.Data
	}
	return resp
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req countRequest) handler.Response {
		if req.Count == nil {
			return handler.JSONError(validator.Apply(validator.Custom("count", "field is required", "validation.required", func() bool { return false })))
		}
		return handler.JSON(map[string]int{"count": *req.Count}, handler.WithJSONStatus(http.StatusCreated))
	}
	h := handler.Wrap(echo, handler.WithBinders[handler.Context, countRequest](binder.JSON()))

	post := func(body, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("binds and renders data", func(t *testing.T) {
		t.Parallel()

		rec := post(`{"count":5}`, "application/json")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"count":5}}`, rec.Body.String())
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		t.Parallel()

		rec := post(`{"count":`, "application/json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "bad_request", env.Error.Code)
		assert.Contains(t, env.Error.Message, "failed to parse JSON request body")
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		rec := post(`{"count":5}`, "text/plain")
		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "unsupported_media_type", decodeEnvelope(t, rec).Error.Code)

		rec = post(`{"count":5}`, "")
		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("validation error has details", func(t *testing.T) {
		t.Parallel()

		rec := post(`{}`, "application/json")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Equal(t, map[string][]string{"count": {"field is required"}}, env.Error.Details)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		nilHandler := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		nilHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_server_error", decodeEnvelope(t, rec).Error.Code)
	})

	t.Run("custom error handler sees binder and render errors", func(t *testing.T) {
		t.Parallel()

		var seen []error
		onErr := func(ctx handler.Context, err error) {
			seen = append(seen, err)
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}

		broken := handler.Wrap(
			func(handler.Context, countRequest) handler.Response { return brokenResponse{} },
			handler.WithBinders[handler.Context, countRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, countRequest](onErr),
		)

		rec := httptest.NewRecorder()
		broken.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"count":1}`))
		req.Header.Set("Content-Type", "application/json")
		broken.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, seen, 2)
		assert.ErrorIs(t, seen[0], binder.ErrMissingContentType)
		assert.EqualError(t, seen[1], "render failed")
	})

	t.Run("context delegates to request", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		var got any
		h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
			got = ctx.Value(key{})
			assert.NoError(t, ctx.Err())
			assert.Equal(t, "/ctx", ctx.Request().URL.Path)
			return handler.Empty()
		})

		req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
		req = req.WithContext(contextWithValue(req, key{}, "v"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "v", got)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "bare http error",
			err:        handler.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
			wantMsg:    "Not Found",
		},
		{
			name:       "wrapped http error keeps the cause",
			err:        fmt.Errorf("%w: count must not be negative", handler.ErrUnprocessableEntity),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "unprocessable_entity",
			wantMsg:    "unprocessable_entity: count must not be negative",
		},
		{
			name:       "custom http error",
			err:        handler.NewHTTPError(http.StatusConflict, "conflict"),
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
			wantMsg:    "Conflict",
		},
		{
			name:       "unknown error hides internals",
			err:        errors.New("db password is hunter2"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_server_error",
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "path binding",
			err:        fmt.Errorf("%w: field ID", binder.ErrFailedToParsePath),
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
			wantMsg:    "failed to parse path parameters: field ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
			assert.Nil(t, env.Data)
		})
	}

	t.Run("status override", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSONError(handler.ErrNotFound, handler.WithJSONStatus(http.StatusGone)).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusGone, rec.Code)
	})

	t.Run("json with an error value", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, handler.JSON(handler.ErrBadRequest).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	onErr := handler.NewErrorHandler(log)

	t.Run("client error logs at warn", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/stock", nil)
		onErr(handler.NewContext(rec, req), fmt.Errorf("%w: empty body", binder.ErrFailedToParseJSON))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, logs.String(), `"level":"WARN"`)
		assert.Contains(t, logs.String(), `"status_code":400`)
		assert.Contains(t, logs.String(), `"path":"/stock"`)
	})

	t.Run("server error logs at error", func(t *testing.T) {
		logs.Reset()
		rec := httptest.NewRecorder()
		onErr(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, logs.String(), `"level":"ERROR"`)
		assert.Contains(t, logs.String(), `"error":"boom"`)
	})
}

func contextWithValue(r *http.Request, key, value any) context.Context {
	return context.WithValue(r.Context(), key, value)
}
