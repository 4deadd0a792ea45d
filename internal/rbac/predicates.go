package rbac

import "net/http"

// Permission predicates. Each is a pure function of the principal (and
// optionally a target) returning allow/deny as a boolean; none of them touch
// the store or return errors. The boundary layer translates a false result
// into the appropriate error response.
//
// A nil principal means the request was unauthenticated and always denies.

// IsSuperAdmin reports whether the principal holds the superadmin role or
// carries the account-level superuser flag.
func IsSuperAdmin(p *Principal) bool {
	if p == nil {
		return false
	}
	return p.Role == RoleSuperAdmin || p.IsSuperuser
}

// IsAdminOrAbove reports whether the principal's role ranks at admin or
// higher.
func IsAdminOrAbove(p *Principal) bool {
	if p == nil {
		return false
	}
	return p.Role.Rank() >= RoleAdmin.Rank()
}

// IsAdmin matches the admin role exactly. Superadmin is deliberately
// excluded: some admin-only views must not be visible to superadmin.
func IsAdmin(p *Principal) bool {
	if p == nil {
		return false
	}
	return p.Role == RoleAdmin
}

// IsUser reports whether the principal is an active account. Any active
// authenticated account may access baseline user-level resources.
func IsUser(p *Principal) bool {
	if p == nil {
		return false
	}
	return p.IsActive
}

// IsOwnerOrAdminOrAbove allows the resource's owner at any rank, and any
// admin-or-above regardless of ownership.
func IsOwnerOrAdminOrAbove(p *Principal, ownerID uint) bool {
	if p == nil {
		return false
	}
	return ownerID == p.UserID || IsAdminOrAbove(p)
}

// CanManageUsers gates user management endpoints.
func CanManageUsers(p *Principal) bool {
	return IsAdminOrAbove(p)
}

// CanChangeRole reports whether the principal may assign target to another
// user. A principal can only grant roles ranking strictly below its own,
// which blocks lateral privilege escalation; superadmin may grant any role,
// including superadmin itself.
func CanChangeRole(p *Principal, target Role) bool {
	if p == nil {
		return false
	}
	if IsSuperAdmin(p) {
		return true
	}
	return target.Rank() < p.Role.Rank()
}

// ReadOnlyOrAdmin allows non-mutating methods for everyone and requires
// admin-or-above for anything that writes.
func ReadOnlyOrAdmin(p *Principal, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return IsAdminOrAbove(p)
}
