// Package query holds the gorm scopes shared by the back-office and public
// listing queries: client filters and pagination.
package query

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
)

// Columns describes the table specific columns used by filters.
type Columns struct {
	Title     string
	WithPrice bool
}

var (
	PropertyColumns = Columns{Title: "title", WithPrice: true}
	ProjectColumns  = Columns{Title: "name"}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search keeps rows whose column contains term, ignoring case. term is
// matched literally, LIKE wildcards included.
func Search(q *gorm.DB, column, term string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

func ParseOptionalID(raw, field string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.FieldValidation(field, "must be a valid id")
	}
	return &id, nil
}

// Filters validates f and returns a scope applying it. The agency filter is
// only honoured when honourAgency is set; callers pass false for tenant
// scoped users so a client supplied agency can never replace the tenancy
// clause.
func Filters(f models.ListingFilter, cols Columns, honourAgency bool) (func(*gorm.DB) *gorm.DB, error) {
	var status constants.ListingStatus
	if f.Status != "" {
		status = constants.ListingStatus(strings.ToUpper(f.Status))
		if !status.Valid() {
			return nil, apperrors.FieldValidation("status", "must be PENDING, APPROVED or REJECTED")
		}
	}
	agencyID, err := ParseOptionalID(f.AgencyID, "agency_id")
	if err != nil {
		return nil, err
	}
	agentID, err := ParseOptionalID(f.AgentID, "agent_id")
	if err != nil {
		return nil, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperrors.FieldValidation("min_price", "must not exceed max_price")
	}

	return func(q *gorm.DB) *gorm.DB {
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if honourAgency && agencyID != nil {
			q = q.Where("agency_id = ?", *agencyID)
		}
		if agentID != nil {
			q = q.Where("agent_id = ?", *agentID)
		}
		if city := strings.TrimSpace(f.City); city != "" {
			q = q.Where("LOWER(city) = ?", strings.ToLower(city))
		}
		if search := strings.TrimSpace(f.Query); search != "" {
			q = Search(q, cols.Title, search)
		}
		if cols.WithPrice {
			if f.MinPrice != nil {
				q = q.Where("price >= ?", *f.MinPrice)
			}
			if f.MaxPrice != nil {
				q = q.Where("price <= ?", *f.MaxPrice)
			}
			if f.PropertyType != "" {
				q = q.Where("property_type = ?", f.PropertyType)
			}
			if f.Operation != "" {
				q = q.Where("operation = ?", f.Operation)
			}
		}
		return q
	}, nil
}

// Paginate counts and fetches one page of rows matching q.
func Paginate[T any](q *gorm.DB, req models.PageRequest, order string) (*models.Page[T], error) {
	req = req.Normalize()

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var items []T
	if err := q.Session(&gorm.Session{}).Order(order).Offset(req.Offset()).Limit(req.Limit).Find(&items).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	page := models.NewPage(items, req, total)
	return &page, nil
}
