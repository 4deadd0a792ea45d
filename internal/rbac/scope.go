package rbac

// OrgScoped is implemented by resources carrying a tenant reference. A nil
// organization means the resource is unaffiliated and visible to superadmin
// only; it is never guessed into the caller's own tenant.
type OrgScoped interface {
	OwningOrganization() *uint
}

// CanObserve reports whether the principal may see a resource scoped to org.
// Superadmin observes every tenant; everyone else only their own.
func CanObserve(p *Principal, org *uint) bool {
	if IsSuperAdmin(p) {
		return true
	}
	if p == nil || org == nil || p.OrganizationID == nil {
		return false
	}
	return *org == *p.OrganizationID
}

// VisibleTo filters candidates down to the subset the principal may observe.
func VisibleTo[T OrgScoped](p *Principal, candidates []T) []T {
	if IsSuperAdmin(p) {
		return candidates
	}
	visible := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if CanObserve(p, c.OwningOrganization()) {
			visible = append(visible, c)
		}
	}
	return visible
}

// CanMutate guards writes to a tenant-scoped resource. The rule is the same
// as for observation; callers surface a false result as not-found rather
// than forbidden so cross-tenant probing cannot confirm a resource exists.
func CanMutate(p *Principal, org *uint) bool {
	return CanObserve(p, org)
}
