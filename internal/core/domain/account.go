package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five recognised account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents one node of an organization's chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	OrganizationID  string      `json:"organizationID"`  // FK -> organizations.organization_id (NON-NULL)
	Code            string      `json:"code"`            // Unique within organization, used for display ordering
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft-disable flag; never implies deletion
	AuditFields
}

// AccountNode is an Account with its children resolved, forming the chart
// forest returned by the registry. Children are ordered by account code.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}
