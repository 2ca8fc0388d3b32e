package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restock/pkg/email"
	"github.com/dmitrymomot/restock/pkg/validator"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     email.Message
		wantErr string
	}{
		{
			name: "valid html message",
			msg:  email.Message{To: "a@x.com", Subject: "Back in stock", HTMLBody: "<p>hi</p>"},
		},
		{
			name: "valid text message",
			msg:  email.Message{To: "test.user+tag@sub.example.com", Subject: "s", TextBody: "hi"},
		},
		{
			name:    "missing recipient",
			msg:     email.Message{Subject: "s", HTMLBody: "b"},
			wantErr: "to: field is required",
		},
		{
			name:    "invalid recipient",
			msg:     email.Message{To: "not-an-email", Subject: "s", HTMLBody: "b"},
			wantErr: "to: must be a valid email address",
		},
		{
			name:    "display name is not a bare address",
			msg:     email.Message{To: "Jane <a@x.com>", Subject: "s", HTMLBody: "b"},
			wantErr: "to: must be a valid email address",
		},
		{
			name:    "whitespace subject",
			msg:     email.Message{To: "a@x.com", Subject: "   ", HTMLBody: "b"},
			wantErr: "subject: field is required",
		},
		{
			name:    "no body",
			msg:     email.Message{To: "a@x.com", Subject: "s"},
			wantErr: "body: html or text body is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.msg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidMessage)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, validator.IsValidationError(err))
		})
	}
}

func TestDevSender_Send(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "emails")
		sender := email.NewDevSender(dir)

		err := sender.Send(ctx, email.Message{
			To:       "a@x.com",
			Subject:  "iphone is back",
			HTMLBody: "<p>product is back in stock!!!</p>",
			Tag:      "restock",
		})
		require.NoError(t, err)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)

		var htmlFile, jsonFile string
		for _, f := range files {
			switch filepath.Ext(f.Name()) {
			case ".html":
				htmlFile = f.Name()
			case ".json":
				jsonFile = f.Name()
			}
		}
		assert.True(t, strings.HasSuffix(htmlFile, "_restock.html"))

		html, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<p>product is back in stock!!!</p>", string(html))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		var meta map[string]string
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "a@x.com", meta["to"])
		assert.Equal(t, "iphone is back", meta["subject"])
		assert.Equal(t, "restock", meta["tag"])
	})

	t.Run("unique names within one second", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)
		msg := email.Message{To: "a@x.com", Subject: "Same Subject!", TextBody: "x"}
		require.NoError(t, sender.Send(ctx, msg))
		require.NoError(t, sender.Send(ctx, msg))

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, files, 4)
		for _, f := range files {
			assert.Contains(t, f.Name(), "same_subject")
		}
	})

	t.Run("invalid message writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := email.NewDevSender(dir).Send(ctx, email.Message{To: "bad"})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)

		files, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := email.NewDevSender(t.TempDir()).Send(cctx, email.Message{To: "a@x.com", Subject: "s", TextBody: "b"})
		assert.ErrorIs(t, err, email.ErrFailedToSend)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfig_UsePostmark(t *testing.T) {
	t.Parallel()

	assert.False(t, email.Config{}.UsePostmark())
	assert.False(t, email.Config{PostmarkServerToken: "s"}.UsePostmark())
	assert.True(t, email.Config{PostmarkServerToken: "s", PostmarkAccountToken: "a"}.UsePostmark())
}
