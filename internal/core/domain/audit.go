package domain

import "time"

// AuditFields holds the common creation/modification metadata embedded in
// every persisted entity. CreatedBy/LastUpdatedBy record the acting user id
// supplied by the identity collaborator; the core never authenticates.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
