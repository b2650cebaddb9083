package apperrors

import "fmt"

// Account registry errors. Each wraps a generic sentinel so callers can match
// on either the specific or the broad condition with errors.Is.
var (
	// ErrDuplicateCode indicates an account code collision within an organization.
	ErrDuplicateCode = fmt.Errorf("account code already in use: %w", ErrDuplicate)

	// ErrInvalidParent indicates a missing, foreign, or cycle-forming parent account.
	ErrInvalidParent = fmt.Errorf("invalid parent account: %w", ErrValidation)

	// ErrAccountInUse indicates the account is referenced by journal lines and
	// cannot be deleted.
	ErrAccountInUse = fmt.Errorf("account has recorded activity: %w", ErrConflict)
)

// Journal recorder errors.
var (
	// ErrInvalidLine indicates a line that violates the debit-xor-credit rule,
	// exceeds 2 decimal places, or an entry with no lines.
	ErrInvalidLine = fmt.Errorf("invalid journal line: %w", ErrValidation)

	// ErrUnbalancedEntry indicates total debits do not equal total credits.
	ErrUnbalancedEntry = fmt.Errorf("journal entry is not balanced: %w", ErrValidation)

	// ErrUnknownAccount indicates a line referencing a missing, foreign, or
	// inactive account.
	ErrUnknownAccount = fmt.Errorf("unknown or inactive account: %w", ErrValidation)
)
