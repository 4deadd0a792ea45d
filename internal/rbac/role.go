package rbac

// Role is the closed set of profile roles. Roles are persisted as strings but
// compared only through their rank, never lexicographically.
type Role string

// Roles in ascending privilege order.
const (
	RoleUser       Role = "user"
	RoleAnalyst    Role = "analyst"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleStateAdmin Role = "state_admin"
	RoleSuperAdmin Role = "superadmin"
)

// roleRanks is the explicit total order over the role set. Anything not in
// the table ranks at 0, strictly below RoleUser.
var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleAnalyst:    2,
	RoleModerator:  3,
	RoleViewer:     4,
	RoleEditor:     5,
	RoleAdmin:      6,
	RoleStateAdmin: 7,
	RoleSuperAdmin: 8,
}

// AllRoles lists every valid role in ascending rank order.
var AllRoles = []Role{
	RoleUser,
	RoleAnalyst,
	RoleModerator,
	RoleViewer,
	RoleEditor,
	RoleAdmin,
	RoleStateAdmin,
	RoleSuperAdmin,
}

// Rank returns the role's position in the privilege order; higher is more
// privileged. Unknown or empty roles rank at 0 so they can never satisfy an
// "at least" check.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// ParseRole maps a persisted role string onto the closed enum. The boolean is
// false for unknown values; the returned Role still carries the raw string so
// callers can report it, but it ranks at 0.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
