package repositories

import (
	"context"
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of accounts.
type AccountRepositoryFacade interface {
	// SaveAccount inserts a new account. Returns ErrDuplicate if the code is
	// already taken within the workplace.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves a single account scoped to a workplace.
	FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves a set of accounts keyed by ID. Missing IDs
	// are simply absent from the map; callers decide whether that is an error.
	FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns every account in the workplace ordered by code.
	ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error)

	// DeactivateAccount soft-deactivates an account. Accounts referenced by
	// posted lines are never deleted.
	DeactivateAccount(ctx context.Context, workplaceID, accountID, updatedBy string, at time.Time) error
}
