package mapping

import (
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/models"
)

func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelOrganizationMember(d domain.OrganizationMember) models.OrganizationMember {
	return models.OrganizationMember{
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		Role:           string(d.Role),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
