package dto

import (
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest defines one line of a new journal entry.
// Exactly one of Debit and Credit must be positive; the other must be zero
// or omitted. The service enforces this along with the 2 decimal place limit.
type CreateEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to record a new journal entry.
type CreateEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required,max=255"`
	Reference   string                   `json:"reference" binding:"max=100"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	Reference   string              `json:"reference,omitempty"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ToEntryLineResponse converts a domain.JournalLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		AccountName: line.AccountName,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
	}
}

// ToEntryLineResponses converts a slice of domain.JournalLine to []EntryLineResponse.
func ToEntryLineResponses(lines []domain.JournalLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryLineResponse(&line)
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Lines:       ToEntryLineResponses(e.Lines),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit        int        `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken    *string    `form:"nextToken"`
	IncludeLines bool       `form:"includeLines,default=false"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
