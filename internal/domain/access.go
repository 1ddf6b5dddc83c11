package domain

// UserRole is the closed set of platform roles. Roles gate navigation and
// grant native permissions; everything beyond that comes from delegations.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleAdopter      UserRole = "adopter"
	RoleShelter      UserRole = "shelter"
	RoleVolunteer    UserRole = "volunteer"
	RoleMunicipality UserRole = "municipality"
	RoleVet          UserRole = "vet"
	RoleFoster       UserRole = "foster"
	RoleCaretaker    UserRole = "caretaker"
	RoleFeeder       UserRole = "feeder"
	RoleCoordinator  UserRole = "coordinator"
	RoleSponsor      UserRole = "sponsor"
	RoleGuest        UserRole = "guest"
)

// IsValid reports whether the role is one of the known tags.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAdopter, RoleShelter, RoleVolunteer, RoleMunicipality,
		RoleVet, RoleFoster, RoleCaretaker, RoleFeeder, RoleCoordinator,
		RoleSponsor, RoleGuest:
		return true
	default:
		return false
	}
}

// Permission is a delegable capability. The set is closed; affiliations may
// only grant permissions from this list.
type Permission string

const (
	PermEditCats           Permission = "edit_cats"
	PermManageApplications Permission = "manage_applications"
	PermManageTasks        Permission = "manage_tasks"
	PermManageCampaigns    Permission = "manage_campaigns"
)

// AllPermissions returns a fresh slice of every delegable permission.
func AllPermissions() []Permission {
	return []Permission{PermEditCats, PermManageApplications, PermManageTasks, PermManageCampaigns}
}

type AffiliationStatus string

const (
	AffiliationPending  AffiliationStatus = "pending"
	AffiliationAccepted AffiliationStatus = "accepted"
	AffiliationRevoked  AffiliationStatus = "revoked"
)

// Affiliation is a delegation record: a shelter (or other owner) granting
// permissions to a user identified by email. Only accepted affiliations count.
type Affiliation struct {
	ID          string            `json:"id"`
	UserEmail   string            `json:"user_email"`
	GrantedBy   string            `json:"granted_by"`
	Status      AffiliationStatus `json:"status"`
	Permissions []Permission      `json:"permissions"`
}

type User struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// FeatureFlag toggles one navigation entry for one role. Admin is never
// subject to flags.
type FeatureFlag struct {
	Role     UserRole `json:"role"`
	LabelKey string   `json:"label_key"`
	Enabled  bool     `json:"enabled"`
}

// NavItem is a navigation entry as the presentation layer describes it.
// Items without a Path are headers/sections and are never filtered.
type NavItem struct {
	LabelKey string `json:"label_key"`
	Path     string `json:"path,omitempty"`
}
