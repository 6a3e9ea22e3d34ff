package auth

import "time"

// Session is the authenticated dashboard state carried by a token.
type Session struct {
	AdminID    string
	StoreToken string
	ExpiresAt  time.Time
}

type Strategy interface {
	IssueToken(session Session) (string, error)
	ParseToken(token string) (Session, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
