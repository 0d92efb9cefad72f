package youtube

import (
	"encoding/json"
	"fmt"
)

// CredentialError means the provider rejected the API key. Fatal for that
// credential: it must be deactivated and never retried.
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("youtube: credential rejected (reason=%s)", e.Reason)
}

// QuotaError means the credential's daily budget is exhausted. Not
// retryable with the same credential.
type QuotaError struct {
	Reason string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("youtube: quota exceeded (reason=%s)", e.Reason)
}

// TransientError is an unclassified non-2xx response. Safe to retry with
// backoff; retry policy belongs to the caller.
type TransientError struct {
	Status int
	Body   string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("youtube: request failed with status %d: %s", e.Status, e.Body)
}

// NetworkError is a transport-level or body-parsing failure. Safe to retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("youtube: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is malformed caller input, returned before any request
// is issued. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("youtube: invalid %s: %s", e.Field, e.Message)
}

// errorEnvelope matches the provider's error body:
//
//	{"error": {"code", "message", "errors": [...], "details": [...]}}
//
// The structured details shape and the legacy errors shape are both emitted
// depending on endpoint and API version, so classification checks both.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Domain  string `json:"domain"`
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
		Details []struct {
			Type   string `json:"@type"`
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// Classify maps a non-2xx response to the failure taxonomy. The details
// array takes precedence over the legacy errors array; a reason recognized
// there wins regardless of what errors[] contains. Anything unrecognized
// becomes a TransientError carrying the raw status and body.
func Classify(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		for _, d := range env.Error.Details {
			switch d.Reason {
			case "API_KEY_INVALID", "API_KEY_SERVICE_BLOCKED":
				return &CredentialError{Reason: d.Reason}
			case "QUOTA_EXCEEDED", "RATE_LIMIT_EXCEEDED":
				return &QuotaError{Reason: d.Reason}
			}
		}
		for _, e := range env.Error.Errors {
			switch e.Reason {
			case "keyInvalid", "keyExpired":
				return &CredentialError{Reason: e.Reason}
			case "quotaExceeded", "dailyLimitExceeded":
				return &QuotaError{Reason: e.Reason}
			}
		}
	}
	return &TransientError{Status: status, Body: string(body)}
}
