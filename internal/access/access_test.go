package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citycat/adoption-engine/internal/domain"
)

func TestResolvePermissions_NativeSets(t *testing.T) {
	all := domain.AllPermissions()

	admin := ResolvePermissions(domain.User{Email: "a@x", Role: domain.RoleAdmin}, nil)
	assert.Len(t, admin, len(all))

	shelter := ResolvePermissions(domain.User{Email: "s@x", Role: domain.RoleShelter}, nil)
	assert.Len(t, shelter, len(all))

	muni := ResolvePermissions(domain.User{Email: "m@x", Role: domain.RoleMunicipality}, nil)
	require.Len(t, muni, 1)
	assert.True(t, muni.Has(domain.PermManageTasks))

	adopter := ResolvePermissions(domain.User{Email: "u@x", Role: domain.RoleAdopter}, nil)
	assert.Empty(t, adopter)
}

func TestResolvePermissions_UnionWithAcceptedAffiliation(t *testing.T) {
	user := domain.User{Email: "marta@example.org", Role: domain.RoleAdopter}
	affs := []domain.Affiliation{
		{UserEmail: "marta@example.org", Status: domain.AffiliationAccepted, Permissions: []domain.Permission{domain.PermEditCats}},
	}

	set := ResolvePermissions(user, affs)
	require.Len(t, set, 1)
	assert.True(t, set.Has(domain.PermEditCats))
	assert.False(t, set.Has(domain.PermManageTasks))
}

func TestResolvePermissions_IgnoresPendingAndForeignGrants(t *testing.T) {
	user := domain.User{Email: "marta@example.org", Role: domain.RoleVolunteer}
	affs := []domain.Affiliation{
		{UserEmail: "marta@example.org", Status: domain.AffiliationPending, Permissions: []domain.Permission{domain.PermManageCampaigns}},
		{UserEmail: "marta@example.org", Status: domain.AffiliationRevoked, Permissions: []domain.Permission{domain.PermEditCats}},
		{UserEmail: "someone@else.org", Status: domain.AffiliationAccepted, Permissions: []domain.Permission{domain.PermManageTasks}},
	}
	assert.Empty(t, ResolvePermissions(user, affs))
}

func TestResolvePermissions_DuplicateGrantsCollapse(t *testing.T) {
	user := domain.User{Email: "s@x", Role: domain.RoleShelter}
	affs := []domain.Affiliation{
		{UserEmail: "s@x", Status: domain.AffiliationAccepted, Permissions: []domain.Permission{domain.PermEditCats, domain.PermEditCats}},
	}
	set := ResolvePermissions(user, affs)
	assert.Len(t, set, len(domain.AllPermissions()))
}

func TestPermissionSet_Sorted(t *testing.T) {
	set := PermissionSet{
		domain.PermManageTasks: {},
		domain.PermEditCats:    {},
	}
	assert.Equal(t, []domain.Permission{domain.PermEditCats, domain.PermManageTasks}, set.Sorted())
}

func navFixture() ([]domain.NavItem, []domain.FeatureFlag) {
	items := []domain.NavItem{
		{LabelKey: "nav.dashboard", Path: "/dashboard"},
		{LabelKey: "nav.campaigns", Path: "/campaigns"},
		{LabelKey: "nav.applications", Path: "/applications"},
		{LabelKey: "nav.section"}, // header, no path
	}
	flags := []domain.FeatureFlag{
		{Role: domain.RoleShelter, LabelKey: "nav.campaigns", Enabled: false},
		{Role: domain.RoleShelter, LabelKey: "nav.applications", Enabled: true},
		{Role: domain.RoleAdopter, LabelKey: "nav.dashboard", Enabled: false},
	}
	return items, flags
}

func TestFilterNav_DisabledFlagHidesItem(t *testing.T) {
	items, flags := navFixture()

	got := FilterNav(domain.RoleShelter, items, flags)
	require.Len(t, got, 3)
	assert.Equal(t, "nav.dashboard", got[0].LabelKey)
	assert.Equal(t, "nav.applications", got[1].LabelKey)
	assert.Equal(t, "nav.section", got[2].LabelKey)
}

func TestFilterNav_AdminBypassesFlags(t *testing.T) {
	items, flags := navFixture()
	// even a flag explicitly targeting admin is ignored
	flags = append(flags, domain.FeatureFlag{Role: domain.RoleAdmin, LabelKey: "nav.dashboard", Enabled: false})

	got := FilterNav(domain.RoleAdmin, items, flags)
	assert.Equal(t, items, got)
}

func TestFilterNav_OtherRolesFlagsDoNotLeak(t *testing.T) {
	items, flags := navFixture()
	// the adopter's disabled dashboard must not affect volunteers
	got := FilterNav(domain.RoleVolunteer, items, flags)
	assert.Equal(t, items, got)
}

func TestFilterNav_UnflaggedItemsStay(t *testing.T) {
	items := []domain.NavItem{{LabelKey: "nav.new", Path: "/new"}}
	got := FilterNav(domain.RoleShelter, items, nil)
	assert.Equal(t, items, got)
}

func TestDisabledPaths(t *testing.T) {
	items, flags := navFixture()

	disabled := DisabledPaths(domain.RoleShelter, items, flags)
	require.Len(t, disabled, 1)
	_, ok := disabled["/campaigns"]
	assert.True(t, ok)

	assert.Empty(t, DisabledPaths(domain.RoleAdmin, items, flags))
}
