package domain

// Organization is the tenant scope every core record belongs to. The core
// consumes the scope identifier; provisioning happens elsewhere.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	AuditFields
}

// OrganizationRole models the membership roles that gate access to an
// organization's rows, mirroring the row-level policies of the hosted store.
type OrganizationRole string

const (
	RoleAdmin    OrganizationRole = "ADMIN"
	RoleMember   OrganizationRole = "MEMBER"
	RoleReadOnly OrganizationRole = "READONLY"
)

// CanActAs reports whether a held role satisfies a required role.
// ADMIN > MEMBER > READONLY.
func (r OrganizationRole) CanActAs(required OrganizationRole) bool {
	rank := map[OrganizationRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	OrganizationID string           `json:"organizationID"`
	UserID         string           `json:"userID"`
	Role           OrganizationRole `json:"role"`
	AuditFields
}
