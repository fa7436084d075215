package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/inmohub/listings/shared/constants"
)

type CreateAgencyRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=50"`
}

type UpdateAgencyRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type CreateUserRequest struct {
	ExternalAuthID string             `json:"external_auth_id" binding:"required"`
	Name           string             `json:"name"`
	Email          string             `json:"email" binding:"omitempty,email"`
	Role           constants.RoleEnum `json:"role" binding:"required,oneof=SUPER_ADMIN AGENCY_ADMIN AGENT"`
	AgencyID       *uuid.UUID         `json:"agency_id"`
}

type UpdateUserRequest struct {
	Name     *string             `json:"name"`
	Email    *string             `json:"email" binding:"omitempty,email"`
	Role     *constants.RoleEnum `json:"role" binding:"omitempty,oneof=SUPER_ADMIN AGENCY_ADMIN AGENT"`
	AgencyID *uuid.UUID          `json:"agency_id"`
}

// PropertyRequest is used for both create and edit. AgentID is only read on
// create by a super admin; Version is only read on edit.
type PropertyRequest struct {
	Title        string     `json:"title" binding:"required,max=255"`
	Description  string     `json:"description"`
	PropertyType string     `json:"property_type" binding:"max=50"`
	Operation    string     `json:"operation" binding:"omitempty,oneof=sale rent"`
	Price        float64    `json:"price" binding:"gte=0"`
	Currency     string     `json:"currency" binding:"omitempty,len=3"`
	Bedrooms     int        `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int        `json:"bathrooms" binding:"gte=0"`
	AreaM2       float64    `json:"area_m2" binding:"gte=0"`
	Address      string     `json:"address" binding:"max=255"`
	City         string     `json:"city" binding:"max=120"`
	State        string     `json:"state" binding:"max=120"`
	Country      string     `json:"country" binding:"max=120"`
	Latitude     *float64   `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64   `json:"longitude" binding:"omitempty,longitude"`
	MediaURLs    []string   `json:"media_urls" binding:"dive,url"`
	AgentID      *uuid.UUID `json:"agent_id"`
	Version      int        `json:"version" binding:"gte=0"`
}

type QuadrantRequest struct {
	AreaM2    float64 `json:"area_m2" binding:"gte=0"`
	Price     float64 `json:"price" binding:"gte=0"`
	Bedrooms  int     `json:"bedrooms" binding:"gte=0"`
	Bathrooms int     `json:"bathrooms" binding:"gte=0"`
	Available *bool   `json:"available"`
}

type FloorRequest struct {
	Number    *int              `json:"number" binding:"required"`
	Name      string            `json:"name" binding:"max=120"`
	Quadrants []QuadrantRequest `json:"quadrants" binding:"dive"`
}

// ProjectRequest mirrors PropertyRequest. Floors are only read on create.
type ProjectRequest struct {
	Name         string         `json:"name" binding:"required,max=255"`
	Description  string         `json:"description"`
	Active       *bool          `json:"active"`
	Address      string         `json:"address" binding:"max=255"`
	City         string         `json:"city" binding:"max=120"`
	State        string         `json:"state" binding:"max=120"`
	Country      string         `json:"country" binding:"max=120"`
	Latitude     *float64       `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64       `json:"longitude" binding:"omitempty,longitude"`
	DeliveryDate *time.Time     `json:"delivery_date"`
	MediaURLs    []string       `json:"media_urls" binding:"dive,url"`
	Floors       []FloorRequest `json:"floors" binding:"dive"`
	AgentID      *uuid.UUID     `json:"agent_id"`
	Version      int            `json:"version" binding:"gte=0"`
}

type ReviewRequest struct {
	ID              uuid.UUID               `json:"id" binding:"required"`
	Status          constants.ListingStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason string                  `json:"rejection_reason"`
}

type RejectRequest struct {
	Message string `json:"message" binding:"required"`
}

type LandingImageRequest struct {
	Title    string                       `json:"title" binding:"max=255"`
	ImageURL string                       `json:"image_url" binding:"required,url"`
	LinkURL  string                       `json:"link_url" binding:"omitempty,url"`
	Position int                          `json:"position" binding:"gte=0"`
	Status   constants.LandingImageStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ListingFilter holds the client supplied filters for listing queries. They
// are applied after the tenancy scope and can only narrow it.
type ListingFilter struct {
	PageRequest
	Status       string   `form:"status"`
	AgencyID     string   `form:"agency_id"`
	AgentID      string   `form:"agent_id"`
	City         string   `form:"city"`
	Query        string   `form:"q"`
	MinPrice     *float64 `form:"min_price"`
	MaxPrice     *float64 `form:"max_price"`
	PropertyType string   `form:"property_type"`
	Operation    string   `form:"operation"`
}

type UserFilter struct {
	PageRequest
	AgencyID string `form:"agency_id"`
	Role     string `form:"role"`
}

type AgencyFilter struct {
	PageRequest
	Query string `form:"q"`
}
