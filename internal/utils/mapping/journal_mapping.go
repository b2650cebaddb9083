package mapping

import (
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its row representation.
// Lines are mapped separately; the entry row never embeds them.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts an entry row to the domain representation.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its row representation.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AccountName: d.AccountName,
		AccountType: models.AccountType(d.AccountType),
	}
}

// ToDomainJournalLine converts a line row to the domain representation.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AccountName: m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
	}
}

// ToDomainJournalLineSlice converts line rows to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
