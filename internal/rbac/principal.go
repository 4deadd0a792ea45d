package rbac

// PrincipalContextKey is where the request pipeline stores the resolved
// Principal on the echo context.
const PrincipalContextKey = "principal"

// Principal is the resolved identity of the caller for the duration of one
// request. It is built once from a verified token claim plus the current
// account and profile records, and never mutated afterwards.
//
// A missing profile resolves to an empty Role (rank 0), not an error:
// authentication still succeeds, elevated checks simply fail.
type Principal struct {
	UserID         uint
	Username       string
	Email          string
	IsActive       bool
	IsSuperuser    bool
	IsStaff        bool
	Role           Role
	OrganizationID *uint
}
