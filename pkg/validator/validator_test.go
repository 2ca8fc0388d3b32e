package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restock/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("target", "jane@example.com"),
			validator.ValidEmail("target", "jane@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("target", " "),
			validator.ValidEmail("target", " "),
			validator.OneOfString("channel", "pigeon", []string{"email", "sms"}),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{"target", "channel"}, verrs.Fields())
		assert.Equal(t, []string{"field is required", "must be a valid email address"}, verrs.Get("target"))
		assert.Equal(t, []string{"must be one of: email, sms"}, verrs.Get("channel"))
		assert.True(t, verrs.Has("channel"))
		assert.False(t, verrs.Has("count"))
		assert.Equal(t, map[string][]string{
			"target":  {"field is required", "must be a valid email address"},
			"channel": {"must be one of: email, sms"},
		}, verrs.Map())
		assert.Contains(t, err.Error(), "validation failed: target: field is required")
	})

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("bad input")
		err := fmt.Errorf("%w: %w", sentinel, validator.Apply(validator.MinNum("count", -1, 0)))

		assert.ErrorIs(t, err, sentinel)
		assert.True(t, validator.IsValidationError(err))
		assert.Equal(t, []string{"must be at least 0"}, validator.ExtractValidationErrors(err).Get("count"))
	})

	t.Run("nil and foreign errors", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validator.ExtractValidationErrors(nil))
		assert.False(t, validator.IsValidationError(errors.New("boom")))
	})

	t.Run("custom rule", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(validator.Custom("body", "body is required", "validation.body", func() bool { return false }))
		assert.Equal(t, []string{"body is required"}, validator.ExtractValidationErrors(err).Get("body"))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"jane@example.com", true},
		{"ashuisavid@gmail.com", true},
		{"first.last+tag@sub.example.co", true},
		{"", false},
		{"   ", false},
		{"not-an-email", false},
		{"jane@localhost", false},
		{"jane@.example.com", false},
		{"jane@example.com.", false},
		{"jane@example..com", false},
		{"@example.com", false},
		{"Jane <jane@example.com>", false},
		{" jane@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validator.ValidEmail("email", tt.value).Check())
			assert.Equal(t, tt.valid, validator.IsEmail(tt.value))
		})
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"+15550100", true},
		{"+1 555 0100", true},
		{"+1-555-010-0000", true},
		{"763536281", true},
		{"", false},
		{"1--", false},
		{"1 ( ) .", false},
		{"12345", false},
		{"0123456789", false},
		{"call me", false},
		{"+1234567890123456", false},
		{"(555) 0100", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, validator.ValidPhone("phone", tt.value).Check())
			assert.Equal(t, tt.valid, validator.IsPhone(tt.value))
		})
	}
}

func TestMaxLenString(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MaxLenString("body", "abc", 3).Check())
	assert.False(t, validator.MaxLenString("body", "abcd", 3).Check())
}
