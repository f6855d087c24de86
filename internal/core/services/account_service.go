package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/generalbooks/general_ledger_app/internal/apperrors"
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new chart-of-accounts entry.
func (s *accountService) CreateAccount(ctx context.Context, workplaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.CashFlowCategory != "" && !req.CashFlowCategory.IsValid() {
		return nil, fmt.Errorf("%w: unknown cash flow category %q", apperrors.ErrValidation, req.CashFlowCategory)
	}

	// Cash-designated and uncategorized accounts default to OPERATING so the
	// cash flow classification stays total.
	category := req.CashFlowCategory
	if category == "" {
		category = domain.Operating
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, workplaceID, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		WorkplaceID:      workplaceID,
		Code:             req.Code,
		Name:             req.Name,
		AccountType:      req.AccountType,
		ParentAccountID:  req.ParentAccountID,
		Description:      req.Description,
		IsActive:         true,
		IsCash:           req.IsCash,
		CashFlowCategory: category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("workplace_id", workplaceID), slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, workplaceID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves a set of accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, workplaceID, accountIDs)
}

// ListAccounts returns the workplace's chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, workplaceID)
}

// DeactivateAccount soft-deactivates an account so new postings reject it.
// Existing posted lines keep referencing it; accounts are never deleted.
func (s *accountService) DeactivateAccount(ctx context.Context, workplaceID, accountID, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, workplaceID, accountID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
