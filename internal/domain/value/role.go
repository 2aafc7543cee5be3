package value

import (
	"startupconnect/internal/domain"
	"startupconnect/pkg/errcodes"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleStartup  Role = "STARTUP"
	RoleInvestor Role = "INVESTOR"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStartup, RoleInvestor:
		return Role(s), nil
	}

	return "", domain.NewError(errcodes.InvalidUserRole, "unknown role: "+s)
}
