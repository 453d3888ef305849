package domain

import "time"

// AuthEventResult classifies the outcome of a login attempt.
type AuthEventResult string

const (
	AuthResultSuccess            AuthEventResult = "success"
	AuthResultIdentityNotFound   AuthEventResult = "identity_not_found"
	AuthResultCredentialMismatch AuthEventResult = "credential_mismatch"
)

// AuthEvent is an audit-trail record of a single login attempt. The specific
// failure reason lives only here and in the logs, never in API responses.
type AuthEvent struct {
	Username  string          `json:"username"`
	Result    AuthEventResult `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
	RemoteIP  string          `json:"remote_ip,omitempty"`
}
