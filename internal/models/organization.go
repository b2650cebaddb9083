package models

// Organization is the row shape of the organizations table.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	AuditFields
}

// OrganizationMember is the row shape of the organization_members table.
type OrganizationMember struct {
	OrganizationID string `json:"organizationID"`
	UserID         string `json:"userID"`
	Role           string `json:"role"`
	AuditFields
}
