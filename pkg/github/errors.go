package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed remote call.
type Kind int

const (
	KindUnexpected Kind = iota
	KindUnauthorized
	KindForbidden
	KindRateLimited
	KindNotFound
	KindMethodNotAllowed
	KindConflict
	KindValidation
	KindConnectivity
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindConnectivity:
		return "connectivity"
	default:
		return "unexpected"
	}
}

// Error is returned by every Client method on a non-2xx response or a
// transport failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Details    []ErrorDetail
	Err        error
}

// ErrorDetail is one item of the "errors" array in a GitHub error body.
// GitHub sends either objects or bare strings here.
type ErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func (d *ErrorDetail) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Message = s
		return nil
	}
	type alias ErrorDetail
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = ErrorDetail(a)
	return nil
}

type errorBody struct {
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors"`
}

func (e *Error) Error() string {
	if e.Kind == KindConnectivity {
		return fmt.Sprintf("github: connectivity: %v", e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("github: %s (status %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("github: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HasDetail reports whether any error detail message or code contains substr,
// compared case-insensitively.
func (e *Error) HasDetail(substr string) bool {
	needle := strings.ToLower(substr)
	for _, d := range e.Details {
		if strings.Contains(strings.ToLower(d.Message), needle) || strings.Contains(strings.ToLower(d.Code), needle) {
			return true
		}
	}
	return false
}

// DetailMessages joins the detail messages for pass-through reporting.
func (e *Error) DetailMessages() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		switch {
		case d.Message != "":
			msgs = append(msgs, d.Message)
		case d.Code != "":
			msgs = append(msgs, strings.TrimSpace(fmt.Sprintf("%s %s %s", d.Resource, d.Field, d.Code)))
		}
	}
	return strings.Join(msgs, "; ")
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var ghErr *Error
	if errors.As(err, &ghErr) {
		return ghErr, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	if ghErr, ok := AsError(err); ok {
		return ghErr.Kind
	}
	return KindUnexpected
}
