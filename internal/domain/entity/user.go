package entity

import "startupconnect/internal/domain/value"

type User struct {
	ID    int64
	Email string
	Name  string
	Role  value.Role
}

// Session is the persisted login state: the logged-in user plus the bearer
// token every resource client attaches. It lives in the session store until
// logout; there is no client-side expiry.
type Session struct {
	User  User
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
