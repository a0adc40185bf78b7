// Package validation holds the field rules the handlers apply to form input
// before it reaches the directory core. Messages are stable keys; turning
// them into user-facing text is the caller's job.
package validation

import (
	"net/mail"
	"net/url"
	"sort"
	"strings"
)

// Violations maps a field name to its first failed rule. It doubles as the
// error the handlers surface with a 422.
type Violations map[string]string

// Empty reports whether every rule passed.
func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Required fails when the value is empty or whitespace.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Email fails when a non-empty value is not a parseable address.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "must_be_email"
	}
}

// URL fails when a non-nil, non-empty value is not an absolute URL.
func URL(field string, value *string, v Violations) {
	if value == nil || *value == "" {
		return
	}
	u, err := url.Parse(*value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v[field] = "must_be_url"
	}
}

// In fails when a non-empty value is outside the allowed set.
func In(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	v[field] = "not_allowed"
}
