package domain

// Role enumerates the authorities a principal can hold.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Principal is an account allowed to log in.
type Principal struct {
	Username     string
	PasswordHash string
	Roles        []Role
	Enabled      bool
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	return HasAnyRole(p.Roles, roles...)
}

// HasAnyRole reports whether granted intersects wanted.
func HasAnyRole(granted []Role, wanted ...Role) bool {
	for _, g := range granted {
		for _, w := range wanted {
			if g == w {
				return true
			}
		}
	}
	return false
}
