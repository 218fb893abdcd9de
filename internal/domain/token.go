package domain

// TokenKind discriminates the two JWT credentials the service issues.
// Access tokens authorize individual protected requests; refresh tokens are
// used solely to mint new access tokens.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)
