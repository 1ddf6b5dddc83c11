// Package access resolves effective permissions and feature-flag gated
// navigation for the platform's twelve roles.
package access

import (
	"sort"

	"github.com/citycat/adoption-engine/internal/domain"
)

// PermissionSet is the effective capability set of one user.
type PermissionSet map[domain.Permission]struct{}

func (s PermissionSet) Has(p domain.Permission) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the permissions as a deterministic slice, for JSON output
// and logging.
func (s PermissionSet) Sorted() []domain.Permission {
	out := make([]domain.Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NativePermissions returns what a role grants by itself: admin and shelter
// hold everything, municipality handles tasks, everyone else starts empty.
func NativePermissions(role domain.UserRole) []domain.Permission {
	switch role {
	case domain.RoleAdmin, domain.RoleShelter:
		return domain.AllPermissions()
	case domain.RoleMunicipality:
		return []domain.Permission{domain.PermManageTasks}
	default:
		return nil
	}
}

// ResolvePermissions unions the role's native permissions with every grant
// from an accepted affiliation addressed to the user's email.
func ResolvePermissions(user domain.User, affiliations []domain.Affiliation) PermissionSet {
	set := make(PermissionSet)
	for _, p := range NativePermissions(user.Role) {
		set[p] = struct{}{}
	}
	for _, aff := range affiliations {
		if aff.UserEmail != user.Email || aff.Status != domain.AffiliationAccepted {
			continue
		}
		for _, p := range aff.Permissions {
			set[p] = struct{}{}
		}
	}
	return set
}

// DisabledPaths computes the nav paths hidden from a role by feature flags.
// Admin bypasses flags entirely and always gets an empty set.
func DisabledPaths(role domain.UserRole, items []domain.NavItem, flags []domain.FeatureFlag) map[string]struct{} {
	disabled := make(map[string]struct{})
	if role == domain.RoleAdmin {
		return disabled
	}
	flagged := make(map[string]bool, len(flags))
	for _, f := range flags {
		if f.Role == role {
			flagged[f.LabelKey] = f.Enabled
		}
	}
	for _, item := range items {
		if item.Path == "" {
			continue
		}
		if enabled, ok := flagged[item.LabelKey]; ok && !enabled {
			disabled[item.Path] = struct{}{}
		}
	}
	return disabled
}

// FilterNav removes items whose path is disabled for the role, preserving
// order. For admin it is the identity function.
func FilterNav(role domain.UserRole, items []domain.NavItem, flags []domain.FeatureFlag) []domain.NavItem {
	if role == domain.RoleAdmin {
		return items
	}
	disabled := DisabledPaths(role, items, flags)
	if len(disabled) == 0 {
		return items
	}
	out := make([]domain.NavItem, 0, len(items))
	for _, item := range items {
		if _, hidden := disabled[item.Path]; hidden && item.Path != "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
