package models

// AccountType mirrors the account_type column values.
type AccountType string

// Account is the row shape of the accounts table.
type Account struct {
	AccountID       string      `json:"accountID"`
	OrganizationID  string      `json:"organizationID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Empty string when NULL in the DB
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
