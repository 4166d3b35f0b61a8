package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) FindLedgerLines(ctx context.Context, accountCode string, from, to *time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkApproval(ctx context.Context, entryID string, status domain.EntryStatus, approverID string, at time.Time) error {
	args := m.Called(ctx, entryID, status, approverID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, allowedFrom []domain.EntryStatus, balanceChanges map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	args := m.Called(ctx, entryID, allowedFrom, balanceChanges, updatedBy, at)
	return args.Error(0)
}

func (m *MockJournalRepository) NextSequence(ctx context.Context, scope string) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SumBalancesByType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error) {
	args := m.Called(ctx, accountType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) FindPostedLinesByAccount(ctx context.Context, code string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, code, updatedBy, at)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	salesAccount    domain.Account
	salaryAccount   domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, decimal.NewFromInt(500000))

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountCode:   domain.CodeCash,
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	suite.salesAccount = domain.Account{
		AccountCode:   domain.CodeSalesRevenue,
		Name:          "Sales Revenue",
		AccountType:   domain.Revenue,
		NormalBalance: domain.CreditNormal,
		IsActive:      true,
	}
	suite.salaryAccount = domain.Account{
		AccountCode:   domain.CodeSalaryExpense,
		Name:          "Salary Expense",
		AccountType:   domain.Expense,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountCode] = a
	}
	return out
}

func salesRequest(amount string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        "2024-03-15",
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.RequireFromString(amount)},
			{AccountCode: domain.CodeSalesRevenue, EntryType: "credit", Amount: decimal.RequireFromString(amount)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_BelowThresholdPostsImmediately() {
	ctx := context.Background()
	req := salesRequest("150000")

	accounts := suite.accountsMap(suite.cashAccount, suite.salesAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, []string{domain.CodeCash, domain.CodeSalesRevenue}).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("NextSequence", ctx, "journal_entry").Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPending && !e.RequiresApproval && len(e.Lines) == 2
	})).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.Anything, []domain.EntryStatus{domain.StatusPending}, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[domain.CodeCash].Equal(decimal.NewFromInt(150000)) &&
			changes[domain.CodeSalesRevenue].Equal(decimal.NewFromInt(150000))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.Equal("JE-000001", entry.ReferenceNo)
	suite.Equal(domain.ManualJournal, entry.SourceType)
	suite.True(entry.TotalAmount.Equal(decimal.NewFromInt(150000)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AtThresholdStaysPending() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        "2024-03-31",
		Description: "Monthly salary",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeSalaryExpense, EntryType: "debit", Amount: decimal.NewFromInt(500000)},
			{AccountCode: domain.CodeCash, EntryType: "credit", Amount: decimal.NewFromInt(500000)},
		},
	}

	accounts := suite.accountsMap(suite.salaryAccount, suite.cashAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("NextSequence", ctx, "journal_entry").Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.StatusPending && e.RequiresApproval
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.True(entry.RequiresApproval)
	suite.Equal("JE-000007", entry.ReferenceNo)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ApprovalFlagForcesWorkflow() {
	ctx := context.Background()
	req := salesRequest("1000")
	force := true
	req.RequiresApproval = &force

	accounts := suite.accountsMap(suite.cashAccount, suite.salesAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("NextSequence", ctx, "journal_entry").Return(int64(2), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.True(entry.RequiresApproval)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnbalancedRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        "2024-03-15",
		Description: "Unbalanced",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeSalesRevenue, EntryType: "credit", Amount: decimal.NewFromInt(90)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ToleranceAccepted() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        "2024-03-15",
		Description: "Rounding residue",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.RequireFromString("100.005")},
			{AccountCode: domain.CodeSalesRevenue, EntryType: "credit", Amount: decimal.RequireFromString("100.00")},
		},
	}

	accounts := suite.accountsMap(suite.cashAccount, suite.salesAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("NextSequence", ctx, "journal_entry").Return(int64(3), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLineRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        "2024-03-15",
		Description: "One-legged",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmountRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        "2024-03-15",
		Description: "Negative line",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.NewFromInt(-100)},
			{AccountCode: domain.CodeSalesRevenue, EntryType: "credit", Amount: decimal.NewFromInt(-100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccountRejected() {
	ctx := context.Background()
	req := salesRequest("100")

	inactiveSales := suite.salesAccount
	inactiveSales.IsActive = false
	accounts := suite.accountsMap(suite.cashAccount, inactiveSales)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInactive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccountRejected() {
	ctx := context.Background()
	req := salesRequest("100")

	accounts := suite.accountsMap(suite.cashAccount) // sales account missing
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntryFromEvent_TypeScopedReference() {
	ctx := context.Background()
	lines := []domain.JournalLine{
		{AccountCode: domain.CodeCash, EntryType: domain.Debit, Amount: decimal.NewFromInt(150000)},
		{AccountCode: domain.CodeSalesRevenue, EntryType: domain.Credit, Amount: decimal.NewFromInt(150000)},
	}
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	accounts := suite.accountsMap(suite.cashAccount, suite.salesAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("NextSequence", ctx, "sales_cash:2024").Return(int64(1), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateEntryFromEvent(ctx, domain.SalesCash, entryDate, "Walk-in sale", lines, nil, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("SAL-2024-0001", entry.ReferenceNo)
	suite.Equal(domain.SalesCash, entry.SourceType)
	suite.Equal(domain.StatusPosted, entry.Status)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_PostsAfterApproval() {
	ctx := context.Background()
	entryID := uuid.NewString()
	approverID := uuid.NewString()
	pending := &domain.JournalEntry{
		EntryID:          entryID,
		Status:           domain.StatusPending,
		RequiresApproval: true,
		AuditFields:      domain.AuditFields{CreatedBy: suite.userID},
	}
	lines := []domain.JournalLine{
		{EntryID: entryID, AccountCode: domain.CodeSalaryExpense, EntryType: domain.Debit, Amount: decimal.NewFromInt(500000)},
		{EntryID: entryID, AccountCode: domain.CodeCash, EntryType: domain.Credit, Amount: decimal.NewFromInt(500000)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("MarkApproval", ctx, entryID, domain.StatusApproved, approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	accounts := suite.accountsMap(suite.salaryAccount, suite.cashAccount)
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, entryID, []domain.EntryStatus{domain.StatusApproved}, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		// Salary expense is debit-normal: +500000; cash credited: -500000.
		return changes[domain.CodeSalaryExpense].Equal(decimal.NewFromInt(500000)) &&
			changes[domain.CodeCash].Equal(decimal.NewFromInt(-500000))
	}), approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.ApproveEntry(ctx, entryID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, entry.Status)
	suite.Require().NotNil(entry.ApprovedBy)
	suite.Equal(approverID, *entry.ApprovedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveEntry_CreatorCannotApprove() {
	ctx := context.Background()
	entryID := uuid.NewString()
	pending := &domain.JournalEntry{
		EntryID:          entryID,
		Status:           domain.StatusPending,
		RequiresApproval: true,
		AuditFields:      domain.AuditFields{CreatedBy: suite.userID},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestApproveEntry_RaceLoserObservesTransitionError() {
	ctx := context.Background()
	entryID := uuid.NewString()
	approverID := uuid.NewString()
	pending := &domain.JournalEntry{
		EntryID:          entryID,
		Status:           domain.StatusPending,
		RequiresApproval: true,
		AuditFields:      domain.AuditFields{CreatedBy: suite.userID},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockJournalRepo.On("MarkApproval", ctx, entryID, domain.StatusApproved, approverID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrInvalidStateTransition).Once()

	_, err := suite.service.ApproveEntry(ctx, entryID, approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *JournalServiceTestSuite) TestRejectEntry_TerminalNoBalanceTouch() {
	ctx := context.Background()
	entryID := uuid.NewString()
	approverID := uuid.NewString()
	pending := &domain.JournalEntry{
		EntryID:          entryID,
		Status:           domain.StatusPending,
		RequiresApproval: true,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()
	suite.mockJournalRepo.On("MarkApproval", ctx, entryID, domain.StatusRejected, approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, err := suite.service.RejectEntry(ctx, entryID, approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, entry.Status)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_RejectedEntryFails() {
	ctx := context.Background()
	entryID := uuid.NewString()
	rejected := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusRejected}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(rejected, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SecondPostFails() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPosted}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_PendingNeedingApprovalFails() {
	ctx := context.Background()
	entryID := uuid.NewString()
	pending := &domain.JournalEntry{EntryID: entryID, Status: domain.StatusPending, RequiresApproval: true}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(pending, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.JournalLine{}, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedPassthrough() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockJournalRepo.On("DeleteEntry", ctx, entryID).Return(apperrors.ErrAlreadyPosted).Once()

	err := suite.service.DeleteEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
}

func (suite *JournalServiceTestSuite) TestListEntries_NormalizesPagination() {
	ctx := context.Background()
	params := dto.ListJournalsParams{Page: 0, Limit: 1000}

	suite.mockJournalRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Page == 1 && f.Limit == 100
	})).Return([]domain.JournalEntry{}, int64(0), nil).Once()

	resp, err := suite.service.ListEntries(ctx, params)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Page)
	suite.Equal(100, resp.Limit)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
