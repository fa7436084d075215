package constants

type ListingStatus string

const (
	StatusPending  ListingStatus = "PENDING"
	StatusApproved ListingStatus = "APPROVED"
	StatusRejected ListingStatus = "REJECTED"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type LandingImageStatus string

const (
	LandingImageActive   LandingImageStatus = "ACTIVE"
	LandingImageInactive LandingImageStatus = "INACTIVE"
)

// Identity provisioning policies for identities with no local user row.
const (
	ProvisioningDisabled  = "disabled"
	ProvisioningBootstrap = "bootstrap"
)
