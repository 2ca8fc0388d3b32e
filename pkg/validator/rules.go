package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
)

// E.164: optional plus, no leading zero, up to 15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Key:     "validation.required",
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Key:     "validation.max_length",
		},
	}
}

// MinNum validates that a numeric value is greater than or equal to min.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Key:     "validation.min",
		},
	}
}

// OneOfString validates that value is one of options.
func OneOfString(field, value string, options []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(options, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(options, ", ")),
			Key:     "validation.in_list",
		},
	}
}

// ValidEmail validates an RFC 5322 address that also has a dotted domain.
// Display names ("Jane <jane@example.com>") are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Key:     "validation.email",
		},
	}
}

// ValidPhone validates an international phone number. Spaces and dashes are
// ignored; what remains must be E.164 with at least 7 characters.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsPhone(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid phone number in international format",
			Key:     "validation.phone",
		},
	}
}

// IsEmail reports whether value passes ValidEmail.
func IsEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// IsPhone reports whether value passes ValidPhone.
func IsPhone(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(value, " ", ""), "-", "")
	if len(cleaned) < 7 {
		return false
	}
	return phoneRegex.MatchString(cleaned)
}
