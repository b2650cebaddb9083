package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/core/ledger"
)

func account(id, code, name, parentID string) domain.Account {
	return domain.Account{
		AccountID:       id,
		Code:            code,
		Name:            name,
		AccountType:     domain.Expense,
		ParentAccountID: parentID,
		IsActive:        true,
	}
}

func TestBuildAccountTree_NestsAndOrdersByCode(t *testing.T) {
	accounts := []domain.Account{
		account("ops", "5000", "Operating Expenses", ""),
		account("rent", "5100", "Rent", "ops"),
		account("ads", "5050", "Advertising", "ops"),
		account("cash", "1000", "Cash", ""),
	}

	roots := ledger.BuildAccountTree(accounts)
	require.Len(t, roots, 2)

	assert.Equal(t, "1000", roots[0].Code)
	assert.Equal(t, "5000", roots[1].Code)

	children := roots[1].Children
	require.Len(t, children, 2)
	assert.Equal(t, "Advertising", children[0].Name)
	assert.Equal(t, "Rent", children[1].Name)
}

func TestBuildAccountTree_DanglingParentBecomesRoot(t *testing.T) {
	accounts := []domain.Account{
		account("orphan", "5200", "Software", "vanished"),
		account("cash", "1000", "Cash", ""),
	}

	roots := ledger.BuildAccountTree(accounts)
	require.Len(t, roots, 2, "an unresolvable parent promotes the account to a root, it is never dropped")
	assert.Equal(t, "Cash", roots[0].Name)
	assert.Equal(t, "Software", roots[1].Name)
}

func TestBuildAccountTree_Empty(t *testing.T) {
	assert.Empty(t, ledger.BuildAccountTree(nil))
}

func TestWouldCreateCycle(t *testing.T) {
	index := func(accounts ...domain.Account) map[string]domain.Account {
		m := map[string]domain.Account{}
		for _, a := range accounts {
			m[a.AccountID] = a
		}
		return m
	}

	tests := []struct {
		name      string
		accounts  map[string]domain.Account
		accountID string
		parentID  string
		want      bool
	}{
		{
			name:      "self parent",
			accounts:  index(account("a", "1", "A", "")),
			accountID: "a",
			parentID:  "a",
			want:      true,
		},
		{
			name:      "direct cycle",
			accounts:  index(account("b", "2", "B", "c"), account("c", "3", "C", "")),
			accountID: "c",
			parentID:  "b",
			want:      true,
		},
		{
			name: "deep cycle",
			accounts: index(
				account("a", "1", "A", "b"),
				account("b", "2", "B", "c"),
				account("c", "3", "C", ""),
			),
			accountID: "c",
			parentID:  "a",
			want:      true,
		},
		{
			name: "legitimate reparent",
			accounts: index(
				account("a", "1", "A", ""),
				account("b", "2", "B", "a"),
				account("c", "3", "C", ""),
			),
			accountID: "c",
			parentID:  "b",
			want:      false,
		},
		{
			name:      "parent chain already corrupt",
			accounts:  index(account("x", "1", "X", "y"), account("y", "2", "Y", "x")),
			accountID: "z",
			parentID:  "x",
			want:      true,
		},
		{
			name:      "no parent",
			accounts:  index(account("a", "1", "A", "")),
			accountID: "a",
			parentID:  "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.WouldCreateCycle(tt.accounts, tt.accountID, tt.parentID)
			assert.Equal(t, tt.want, got)
		})
	}
}
