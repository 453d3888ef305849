package ports

import "context"

// LoginResult is returned on a successful credential check. It is the only
// identity summary the login endpoint exposes.
type LoginResult struct {
	Token    string
	UserID   int64
	Username string
	RoleName string
}

type AuthService interface {
	Login(ctx context.Context, username, password, remoteIP string) (*LoginResult, error)
}
