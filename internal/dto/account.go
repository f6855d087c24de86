package dto

import (
	"time"

	"github.com/generalbooks/general_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code             string                  `json:"code" binding:"required"`
	Name             string                  `json:"name" binding:"required"`
	AccountType      domain.AccountType      `json:"accountType" binding:"required,accounttype"`
	ParentAccountID  string                  `json:"parentAccountID"`
	Description      string                  `json:"description"`
	IsCash           bool                    `json:"isCash"`
	CashFlowCategory domain.CashFlowCategory `json:"cashFlowCategory" binding:"omitempty,cashflowcategory"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string                  `json:"accountID"`
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	AccountType      domain.AccountType      `json:"accountType"`
	ParentAccountID  string                  `json:"parentAccountID,omitempty"`
	Description      string                  `json:"description,omitempty"`
	IsActive         bool                    `json:"isActive"`
	IsCash           bool                    `json:"isCash"`
	CashFlowCategory domain.CashFlowCategory `json:"cashFlowCategory,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		Code:             a.Code,
		Name:             a.Name,
		AccountType:      a.AccountType,
		ParentAccountID:  a.ParentAccountID,
		Description:      a.Description,
		IsActive:         a.IsActive,
		IsCash:           a.IsCash,
		CashFlowCategory: a.CashFlowCategory,
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
