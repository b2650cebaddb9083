package dto

import (
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// CreateOrganizationRequest defines data for creating a new organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// OrganizationResponse defines data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ToOrganizationResponse converts domain.Organization to DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		CreatedAt:      o.CreatedAt,
		CreatedBy:      o.CreatedBy,
		LastUpdatedAt:  o.LastUpdatedAt,
		LastUpdatedBy:  o.LastUpdatedBy,
	}
}

// AddUserToOrganizationRequest defines data for adding a user to an organization.
type AddUserToOrganizationRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.OrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}
