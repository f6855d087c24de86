package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/generalbooks/general_ledger_app/internal/apperrors"
	"github.com/generalbooks/general_ledger_app/internal/core/domain"
	portsrepo "github.com/generalbooks/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/generalbooks/general_ledger_app/internal/core/ports/services"
	"github.com/generalbooks/general_ledger_app/internal/core/services"
	"github.com/generalbooks/general_ledger_app/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, workplaceID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, workplaceID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, workplaceID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, workplaceID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workplaceID string) ([]domain.Account, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, workplaceID, accountID, updatedBy string, at time.Time) error {
	args := m.Called(ctx, workplaceID, accountID, updatedBy, at)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	workplaceID     string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.workplaceID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsCash:      true,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.WorkplaceID == suite.workplaceID && a.IsActive && a.IsCash
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	// Uncategorized accounts default to the operating bucket.
	suite.Equal(domain.Operating, account.CashFlowCategory)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidAccountType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "9000",
		Name:        "Mystery",
		AccountType: domain.AccountType("GOODWILL"),
	}

	account, err := suite.service.CreateAccount(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: suite.workplaceID,
		Code:        "2000",
		Name:        "Accounts Payable",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	req := dto.CreateAccountRequest{
		Code:            "1100",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: parent.AccountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.workplaceID, parent.AccountID).
		Return(parent, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1100",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: parentID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.workplaceID, parentID).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, suite.workplaceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.workplaceID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.workplaceID, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.workplaceID, accountID, suite.userID,
		mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.workplaceID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
