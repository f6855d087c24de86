package mapping

import (
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/generalbooks/general_ledger_app/internal/models"
)

// ToModelAccount converts a domain.Account to its storage model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		WorkplaceID:      d.WorkplaceID,
		Code:             d.Code,
		Name:             d.Name,
		AccountType:      models.AccountType(d.AccountType),
		ParentAccountID:  d.ParentAccountID,
		Description:      d.Description,
		IsActive:         d.IsActive,
		IsCash:           d.IsCash,
		CashFlowCategory: string(d.CashFlowCategory),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a storage model account to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		WorkplaceID:      m.WorkplaceID,
		Code:             m.Code,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		ParentAccountID:  m.ParentAccountID,
		Description:      m.Description,
		IsActive:         m.IsActive,
		IsCash:           m.IsCash,
		CashFlowCategory: domain.CashFlowCategory(m.CashFlowCategory),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
