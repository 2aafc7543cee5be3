package session

import "startupconnect/internal/domain/value"

func parseRoleLenient(s string) (value.Role, bool) {
	role, err := value.ParseRole(s)
	if err != nil {
		return "", false
	}

	return role, true
}
