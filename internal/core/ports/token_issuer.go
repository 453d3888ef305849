package ports

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	Username string
	RoleName string
}

// TokenIssuer creates and verifies signed, time-bounded session tokens.
// Verification fails closed: any signature, format, or expiry problem yields
// an error, never partial claims.
type TokenIssuer interface {
	Issue(username, roleName string) (string, error)
	Verify(token string) (*TokenClaims, error)
}
