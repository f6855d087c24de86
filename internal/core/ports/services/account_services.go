package services

import (
	"context"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)
	// DeactivateAccount soft-deactivates; accounts referenced by posted lines
	// are never deleted.
	DeactivateAccount(ctx context.Context, workplaceID, accountID, userID string) error
}
