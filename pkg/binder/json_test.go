package binder_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restock/pkg/binder"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	type testStruct struct {
		Channel string   `json:"channel"`
		Count   *int     `json:"count"`
		Tags    []string `json:"tags"`
	}

	newRequest := func(body, contentType string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req
	}

	t.Run("valid JSON binding", func(t *testing.T) {
		t.Parallel()

		var result testStruct
		err := binder.JSON()(newRequest(`{"channel":"email","count":5,"tags":["a"]}`, "application/json"), &result)

		require.NoError(t, err)
		assert.Equal(t, "email", result.Channel)
		require.NotNil(t, result.Count)
		assert.Equal(t, 5, *result.Count)
		assert.Equal(t, []string{"a"}, result.Tags)
	})

	t.Run("content type with charset", func(t *testing.T) {
		t.Parallel()

		var result testStruct
		err := binder.JSON()(newRequest(`{"count":0}`, "Application/JSON; charset=utf-8"), &result)

		require.NoError(t, err)
		require.NotNil(t, result.Count)
		assert.Equal(t, 0, *result.Count)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		var result testStruct
		err := binder.JSON()(newRequest(`{"count":1}`, ""), &result)

		assert.ErrorIs(t, err, binder.ErrMissingContentType)
		assert.Contains(t, err.Error(), "expected application/json")
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		var result testStruct
		err := binder.JSON()(newRequest(`{"count":1}`, "text/plain"), &result)

		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("malformed bodies", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body string
			want string
		}{
			{"empty body", "", "empty body"},
			{"invalid syntax", `{"count":`, "unexpected EOF"},
			{"wrong type", `{"count":"five"}`, "cannot unmarshal"},
			{"unknown field", `{"cnt":5}`, "unknown field"},
			{"trailing data", `{"count":5}{"count":6}`, "unexpected data after JSON object"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				var result testStruct
				err := binder.JSON()(newRequest(tt.body, "application/json"), &result)

				assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		body := `{"channel":"` + strings.Repeat("x", binder.DefaultMaxJSONSize) + `"}`
		var result testStruct
		err := binder.JSON()(newRequest(body, "application/json"), &result)

		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "request body too large")
	})

	t.Run("strips control characters", func(t *testing.T) {
		t.Parallel()

		var result testStruct
		err := binder.JSON()(newRequest(`{"channel":"em\u0000ail","tags":["a\u0007b"]}`, "application/json"), &result)

		require.NoError(t, err)
		assert.Equal(t, "email", result.Channel)
		assert.Equal(t, []string{"ab"}, result.Tags)
	})

	t.Run("cancelled request", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var result testStruct
		err := binder.JSON()(newRequest(`{}`, "application/json").WithContext(ctx), &result)

		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}
