package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRankOrder(t *testing.T) {
	// AllRoles is declared in ascending privilege order; ranks must agree.
	for i := 1; i < len(AllRoles); i++ {
		assert.Greater(t, AllRoles[i].Rank(), AllRoles[i-1].Rank(),
			"%s must outrank %s", AllRoles[i], AllRoles[i-1])
	}
}

func TestRoleRankStrictTotalOrder(t *testing.T) {
	for _, r1 := range AllRoles {
		// Irreflexive: no role outranks itself.
		assert.False(t, r1.Rank() > r1.Rank())

		for _, r2 := range AllRoles {
			gt12 := r1.Rank() > r2.Rank()
			gt21 := r2.Rank() > r1.Rank()

			// Antisymmetric: at most one direction holds.
			assert.False(t, gt12 && gt21, "%s vs %s", r1, r2)

			// Total: distinct roles are always comparable.
			if r1 != r2 {
				assert.True(t, gt12 || gt21, "%s vs %s must be ordered", r1, r2)
			}

			// Transitive.
			for _, r3 := range AllRoles {
				if gt12 && r2.Rank() > r3.Rank() {
					assert.True(t, r1.Rank() > r3.Rank(),
						"%s > %s > %s must imply %s > %s", r1, r2, r3, r1, r3)
				}
			}
		}
	}
}

func TestUnknownRoleRanksLowest(t *testing.T) {
	for _, raw := range []string{"", "root", "ADMIN", "super_admin"} {
		role, ok := ParseRole(raw)
		assert.False(t, ok, "%q must not parse as a valid role", raw)
		assert.Equal(t, 0, role.Rank())
		assert.Less(t, role.Rank(), RoleUser.Rank())
	}
}

func TestParseRoleAcceptsAllValidRoles(t *testing.T) {
	for _, r := range AllRoles {
		parsed, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, parsed)
	}
}
