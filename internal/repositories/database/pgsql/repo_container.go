package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgx-backed repositories sharing one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
	}
}
