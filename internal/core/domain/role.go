package domain

// Role is an authorization role, matched by exact string.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// roleTable maps stored role identifiers to roles. Identifiers missing from
// the table grant nothing.
var roleTable = map[int]Role{
	1: RoleUser,
	2: RoleAdmin,
}

// RoleSet is the set of roles held by a principal.
type RoleSet map[Role]struct{}

// RolesFor returns the roles for a stored role identifier. Unmapped
// identifiers yield an empty, non-nil set.
func RolesFor(roleID int) RoleSet {
	set := make(RoleSet, 1)
	if r, ok := roleTable[roleID]; ok {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the set contains role.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// Names returns the role names in table order, for logging and responses.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, r := range []Role{RoleUser, RoleAdmin} {
		if s.Has(r) {
			names = append(names, string(r))
		}
	}
	return names
}
