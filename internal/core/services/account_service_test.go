package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockJournalRepo)
	suite.userID = "user-1"
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesNormalBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode: "1600",
		Name:        "Vehicles",
		AccountType: "asset",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountCode == "1600" &&
			a.NormalBalance == domain.DebitNormal &&
			a.Balance.IsZero() &&
			a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ContraOverride() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:   "1511",
		Name:          "Accumulated Depreciation - Vehicles",
		AccountType:   "asset",
		NormalBalance: "credit",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.Asset && a.NormalBalance == domain.CreditNormal
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNormal, account.NormalBalance)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{AccountCode: "1000", Name: "Cash", AccountType: "asset"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetGeneralLedger_RunningBalance() {
	ctx := context.Background()
	cash := &domain.Account{
		AccountCode:   domain.CodeCash,
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	lines := []domain.LedgerLine{
		{ReferenceNo: "SAL-2024-0001", EntryType: domain.Debit, Amount: decimal.NewFromInt(150000)},
		{ReferenceNo: "EXP-2024-0001", EntryType: domain.Credit, Amount: decimal.NewFromInt(50000)},
		{ReferenceNo: "SAL-2024-0002", EntryType: domain.Debit, Amount: decimal.NewFromInt(25000)},
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeCash).Return(cash, nil).Once()
	suite.mockJournalRepo.On("FindLedgerLines", ctx, domain.CodeCash, (*time.Time)(nil), (*time.Time)(nil)).Return(lines, nil).Once()

	ledger, err := suite.service.GetGeneralLedger(ctx, domain.CodeCash, dto.LedgerParams{})

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Lines, 3)
	suite.True(ledger.Lines[0].Balance.Equal(decimal.NewFromInt(150000)))
	suite.True(ledger.Lines[1].Balance.Equal(decimal.NewFromInt(100000)))
	suite.True(ledger.Lines[2].Balance.Equal(decimal.NewFromInt(125000)))
	suite.True(ledger.FinalBalance.Equal(decimal.NewFromInt(125000)))
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_ReplayMatchesSignRule() {
	ctx := context.Background()
	// Contra asset: credit-normal, so credits increase the balance.
	accumDep := &domain.Account{
		AccountCode:   domain.CodeAccumulatedDepreciation,
		Name:          "Accumulated Depreciation",
		AccountType:   domain.Asset,
		NormalBalance: domain.CreditNormal,
		IsActive:      true,
	}
	lines := []domain.JournalLine{
		{AccountCode: domain.CodeAccumulatedDepreciation, EntryType: domain.Credit, Amount: decimal.NewFromInt(40000)},
		{AccountCode: domain.CodeAccumulatedDepreciation, EntryType: domain.Credit, Amount: decimal.NewFromInt(40000)},
		{AccountCode: domain.CodeAccumulatedDepreciation, EntryType: domain.Debit, Amount: decimal.NewFromInt(10000)},
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeAccumulatedDepreciation).Return(accumDep, nil).Once()
	suite.mockAccountRepo.On("FindPostedLinesByAccount", ctx, domain.CodeAccumulatedDepreciation).Return(lines, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, domain.CodeAccumulatedDepreciation)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(70000)), "got %s", balance)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, "9999", suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, "9999", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestAggregateBalanceByType() {
	ctx := context.Background()
	suite.mockAccountRepo.On("SumBalancesByType", ctx, domain.Asset).
		Return(decimal.NewFromInt(2500000), nil).Once()

	total, err := suite.service.AggregateBalanceByType(ctx, domain.Asset)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.NewFromInt(2500000)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAggregateBalanceByType_UnknownType() {
	ctx := context.Background()

	_, err := suite.service.AggregateBalanceByType(ctx, domain.AccountType("contra"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SumBalancesByType")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
