package ledger

import (
	"sort"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// BuildAccountTree assembles flat account records into the chart forest.
// Accounts with no parent are roots. An account whose stated parent does not
// resolve within the slice is treated as a root rather than dropped: dangling
// references surface in the output instead of silently losing data. Roots and
// children are ordered by account code.
func BuildAccountTree(accounts []domain.Account) []*domain.AccountNode {
	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &domain.AccountNode{Account: acc}
	}

	roots := []*domain.AccountNode{}
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if acc.ParentAccountID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[acc.ParentAccountID]
		if !ok || acc.ParentAccountID == acc.AccountID {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots
}

func sortNodes(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Code < nodes[j].Code
	})
}

// WouldCreateCycle reports whether linking accountID under newParentID would
// make the account its own ancestor. It walks the parent chain from the
// proposed parent with a visited set, so it also refuses to extend a chain
// that is already cyclic in the stored data. The check is run before any
// write touches the parent relation.
func WouldCreateCycle(accounts map[string]domain.Account, accountID, newParentID string) bool {
	visited := map[string]bool{}
	cur := newParentID
	for cur != "" {
		if cur == accountID {
			return true
		}
		if visited[cur] {
			return true
		}
		visited[cur] = true
		parent, ok := accounts[cur]
		if !ok {
			return false
		}
		cur = parent.ParentAccountID
	}
	return false
}
