package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scopedResource struct {
	id  uint
	org *uint
}

func (r *scopedResource) OwningOrganization() *uint { return r.org }

func uintPtr(v uint) *uint { return &v }

func TestVisibleToFiltersByTenant(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)
	mixed := []*scopedResource{
		{id: 1, org: orgA},
		{id: 2, org: orgB},
		{id: 3, org: orgA},
		{id: 4, org: nil},
	}

	member := &Principal{UserID: 10, IsActive: true, Role: RoleEditor, OrganizationID: orgA}
	visible := VisibleTo(member, mixed)
	assert.Len(t, visible, 2)
	for _, r := range visible {
		assert.Equal(t, *orgA, *r.OwningOrganization())
	}

	// Superadmin sees everything, including the unaffiliated resource.
	super := &Principal{UserID: 11, IsActive: true, Role: RoleSuperAdmin}
	assert.Len(t, VisibleTo(super, mixed), 4)
}

func TestVisibleToUnaffiliatedPrincipal(t *testing.T) {
	resources := []*scopedResource{
		{id: 1, org: uintPtr(1)},
		{id: 2, org: nil},
	}
	// A principal with no organization sees nothing, not even org-less
	// resources; those belong to superadmin alone.
	p := &Principal{UserID: 12, IsActive: true, Role: RoleAdmin}
	assert.Empty(t, VisibleTo(p, resources))
}

func TestCanObserve(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)
	member := &Principal{UserID: 10, IsActive: true, Role: RoleUser, OrganizationID: orgA}

	assert.True(t, CanObserve(member, orgA))
	assert.False(t, CanObserve(member, orgB))
	assert.False(t, CanObserve(member, nil))
	assert.False(t, CanObserve(nil, orgA))

	super := &Principal{UserID: 11, IsActive: true, Role: RoleSuperAdmin}
	assert.True(t, CanObserve(super, orgA))
	assert.True(t, CanObserve(super, nil))
}

func TestCanMutateMatchesObservation(t *testing.T) {
	orgA := uintPtr(1)
	orgB := uintPtr(2)
	member := &Principal{UserID: 10, IsActive: true, Role: RoleAdmin, OrganizationID: orgA}

	assert.True(t, CanMutate(member, orgA))
	assert.False(t, CanMutate(member, orgB))

	super := &Principal{UserID: 11, IsActive: true, Role: RoleSuperAdmin}
	assert.True(t, CanMutate(super, orgB))
}
