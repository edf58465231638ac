package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failed backend response. Code is the structured error code
// newer backends attach; Message is the human-readable detail.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func decodeError(status int, body []byte) error {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Code    string          `json:"code"`
	}
	e := &Error{Status: status}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Code = payload.Code
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			e.Message = detail
		} else if payload.Message != "" {
			e.Message = payload.Message
		} else if len(payload.Detail) > 0 {
			e.Message = string(payload.Detail)
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

// IsNotFound reports whether err is the backend's "does not exist"
// answer. The driver-profile endpoint signals a missing profile this
// way, which is a distinct UI state from a profile that is pending.
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Status == http.StatusNotFound || strings.Contains(strings.ToLower(e.Message), "not found")
}

// IsUnauthorized reports a rejected credential; the caller is expected
// to destroy the session and return to the entry screen.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusUnauthorized
}

// DenialReason classifies login failures tied to the approval lifecycle
// so each gets its own user-facing explanation.
type DenialReason string

const (
	ReasonUnknown          DenialReason = ""
	ReasonPendingApproval  DenialReason = "PENDING_APPROVAL"
	ReasonAccountRejected  DenialReason = "ACCOUNT_REJECTED"
	ReasonAccountSuspended DenialReason = "ACCOUNT_SUSPENDED"
	ReasonEmailNotVerified DenialReason = "EMAIL_NOT_VERIFIED"
)

var codeReasons = map[string]DenialReason{
	"account_pending":    ReasonPendingApproval,
	"account_rejected":   ReasonAccountRejected,
	"account_suspended":  ReasonAccountSuspended,
	"email_not_verified": ReasonEmailNotVerified,
}

// Denial returns the approval-related reason behind err, if any. A
// structured code wins; matching on message substrings is the fallback
// for backends that only send prose.
func Denial(err error) DenialReason {
	var e *Error
	if !errors.As(err, &e) {
		return ReasonUnknown
	}
	if reason, ok := codeReasons[e.Code]; ok {
		return reason
	}

	msg := strings.ToLower(e.Message)
	switch {
	case strings.Contains(msg, "pending"):
		return ReasonPendingApproval
	case strings.Contains(msg, "rejected"):
		return ReasonAccountRejected
	case strings.Contains(msg, "suspended"):
		return ReasonAccountSuspended
	case strings.Contains(msg, "verify"):
		return ReasonEmailNotVerified
	}
	return ReasonUnknown
}
