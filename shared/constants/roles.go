package constants

type RoleEnum string

const (
	RoleSuperAdmin  RoleEnum = "SUPER_ADMIN"
	RoleAgencyAdmin RoleEnum = "AGENCY_ADMIN"
	RoleAgent       RoleEnum = "AGENT"
)

// Valid reports whether r is one of the known roles.
func (r RoleEnum) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAgencyAdmin, RoleAgent:
		return true
	}
	return false
}

// RequiresAgency reports whether users with this role must belong to an agency.
func (r RoleEnum) RequiresAgency() bool {
	return r == RoleAgencyAdmin || r == RoleAgent
}
