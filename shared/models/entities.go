package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/inmohub/listings/shared/constants"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// ===============================
// Agency
// ===============================
type Agency struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Agency) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// ===============================
// User
// ===============================
// AgencyID is nil iff Role is SUPER_ADMIN.
type User struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalAuthID string             `gorm:"type:varchar(255);not null;uniqueIndex" json:"external_auth_id"`
	Name           string             `gorm:"type:varchar(255)" json:"name"`
	Email          string             `gorm:"type:varchar(255)" json:"email"`
	Role           constants.RoleEnum `gorm:"type:varchar(20);not null" json:"role"`
	AgencyID       *uuid.UUID         `gorm:"type:uuid;index" json:"agency_id"`
	Agency         *Agency            `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Active         bool               `gorm:"not null" json:"active"`
	Bootstrap      *bool              `gorm:"uniqueIndex" json:"-"` // set only on the bootstrap super admin
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// ===============================
// Property
// ===============================
// AgencyID is copied from the owning agent at creation and never changes.
type Property struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string                  `gorm:"type:varchar(255);not null" json:"title"`
	Description      string                  `gorm:"type:text" json:"description"`
	Status           constants.ListingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RejectionMessage *string                 `gorm:"type:text" json:"rejection_message"`
	AgentID          uuid.UUID               `gorm:"type:uuid;not null;index" json:"agent_id"`
	Agent            *User                   `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	AgencyID         uuid.UUID               `gorm:"type:uuid;not null;index" json:"agency_id"`
	Agency           *Agency                 `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	PropertyType     string                  `gorm:"type:varchar(50)" json:"property_type"`
	Operation        string                  `gorm:"type:varchar(20)" json:"operation"`
	Price            float64                 `json:"price"`
	Currency         string                  `gorm:"type:varchar(3)" json:"currency"`
	Bedrooms         int                     `json:"bedrooms"`
	Bathrooms        int                     `json:"bathrooms"`
	AreaM2           float64                 `json:"area_m2"`
	Address          string                  `gorm:"type:varchar(255)" json:"address"`
	City             string                  `gorm:"type:varchar(120);index" json:"city"`
	State            string                  `gorm:"type:varchar(120)" json:"state"`
	Country          string                  `gorm:"type:varchar(120)" json:"country"`
	Latitude         *float64                `json:"latitude"`
	Longitude        *float64                `json:"longitude"`
	MediaURLs        datatypes.JSON          `gorm:"type:json" json:"media_urls"`
	Version          int                     `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func (p *Property) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// ===============================
// Project
// ===============================
type Project struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string                  `gorm:"type:varchar(255);not null" json:"name"`
	Description      string                  `gorm:"type:text" json:"description"`
	Status           constants.ListingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	RejectionMessage *string                 `gorm:"type:text" json:"rejection_message"`
	Active           bool                    `gorm:"not null" json:"active"`
	AgentID          uuid.UUID               `gorm:"type:uuid;not null;index" json:"agent_id"`
	Agent            *User                   `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	AgencyID         uuid.UUID               `gorm:"type:uuid;not null;index" json:"agency_id"`
	Agency           *Agency                 `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Address          string                  `gorm:"type:varchar(255)" json:"address"`
	City             string                  `gorm:"type:varchar(120);index" json:"city"`
	State            string                  `gorm:"type:varchar(120)" json:"state"`
	Country          string                  `gorm:"type:varchar(120)" json:"country"`
	Latitude         *float64                `json:"latitude"`
	Longitude        *float64                `json:"longitude"`
	DeliveryDate     *time.Time              `json:"delivery_date"`
	MediaURLs        datatypes.JSON          `gorm:"type:json" json:"media_urls"`
	Version          int                     `gorm:"not null;default:1" json:"version"`
	Floors           []Floor                 `gorm:"constraint:OnDelete:CASCADE" json:"floors,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// Floor numbers are unique per project. QuadrantSeq is the last sequence
// handed out for this floor's quadrants and only ever grows.
type Floor struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_floor_project_number" json:"project_id"`
	Number      int        `gorm:"not null;uniqueIndex:idx_floor_project_number" json:"number"`
	Name        string     `gorm:"type:varchar(120)" json:"name"`
	QuadrantSeq int        `gorm:"not null;default:0" json:"-"`
	Quadrants   []Quadrant `gorm:"constraint:OnDelete:CASCADE" json:"quadrants,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (f *Floor) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	return nil
}

// CustomID is Q001, Q002, ... and unique per floor.
type Quadrant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FloorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quadrant_floor_custom" json:"floor_id"`
	CustomID  string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_quadrant_floor_custom" json:"custom_id"`
	Seq       int       `gorm:"not null;default:0" json:"-"` // counter value behind CustomID
	AreaM2    float64   `json:"area_m2"`
	Price     float64   `json:"price"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quadrant) BeforeCreate(*gorm.DB) error {
	assignID(&q.ID)
	return nil
}

// PreloadStructure loads a project's floors by number and each floor's
// quadrants in creation order.
func PreloadStructure(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Floors", func(q *gorm.DB) *gorm.DB { return q.Order("floors.number ASC") }).
		Preload("Floors.Quadrants", func(q *gorm.DB) *gorm.DB { return q.Order("quadrants.seq ASC") })
}

// ===============================
// LandingImage
// ===============================
type LandingImage struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string                       `gorm:"type:varchar(255)" json:"title"`
	ImageURL  string                       `gorm:"type:varchar(1024);not null" json:"image_url"`
	LinkURL   string                       `gorm:"type:varchar(1024)" json:"link_url"`
	Position  int                          `gorm:"not null;default:0" json:"position"`
	Status    constants.LandingImageStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (l *LandingImage) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// All returns every persisted entity in migration order.
func All() []interface{} {
	return []interface{}{
		&Agency{},
		&User{},
		&Property{},
		&Project{},
		&Floor{},
		&Quadrant{},
		&LandingImage{},
	}
}
