package services_test

import (
	"context"
	"testing"

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

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context, lowStockOnly bool) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, lowStockOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) SavePurchase(ctx context.Context, movement domain.InventoryMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindOpenPurchaseLayers(ctx context.Context, itemID string) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

func (m *MockInventoryRepository) SaveUsage(ctx context.Context, movement domain.InventoryMovement, consumedLayers []domain.InventoryMovement) error {
	args := m.Called(ctx, movement, consumedLayers)
	return args.Error(0)
}

// --- Mock TransactionSvc ---
type MockTransactionSvc struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionSvc)(nil)

func (m *MockTransactionSvc) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockTransactionSvc) Classify(req dto.CreateTransactionRequest) ([]domain.JournalLine, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockInventoryRepository
	mockTxSvc *MockTransactionSvc
	service   portssvc.InventorySvcFacade
	item      domain.InventoryItem
	userID    string
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.mockTxSvc = new(MockTransactionSvc)
	suite.service = services.NewInventoryService(suite.mockRepo, suite.mockTxSvc)
	suite.userID = "user-1"

	suite.item = domain.InventoryItem{
		ItemID:        uuid.NewString(),
		ItemCode:      "FLOUR-25",
		ItemName:      "Wheat Flour 25kg",
		UnitOfMeasure: "sack",
		Quantity:      decimal.NewFromInt(10),
		TotalValue:    decimal.NewFromInt(1000000),
		MinimumStock:  decimal.NewFromInt(2),
		IsActive:      true,
	}
}

func (suite *InventoryServiceTestSuite) TestRecordPurchase_AddsLayerAndBooksEntry() {
	ctx := context.Background()
	req := dto.RecordPurchaseRequest{
		ItemID:   suite.item.ItemID,
		Date:     "2024-03-10",
		Quantity: decimal.NewFromInt(5),
		UnitCost: decimal.NewFromInt(110000),
	}

	suite.mockRepo.On("FindItemByID", ctx, suite.item.ItemID).Return(&suite.item, nil).Once()
	suite.mockRepo.On("SavePurchase", ctx, mock.MatchedBy(func(mv domain.InventoryMovement) bool {
		return mv.MovementType == domain.MovementPurchase &&
			mv.RemainingQuantity.Equal(decimal.NewFromInt(5)) &&
			mv.TotalCost.Equal(decimal.NewFromInt(550000))
	})).Return(nil).Once()
	suite.mockTxSvc.On("CreateTransaction", ctx, mock.MatchedBy(func(tx dto.CreateTransactionRequest) bool {
		return tx.TransactionType == "purchase_cash" && tx.Amount.Equal(decimal.NewFromInt(550000))
	}), suite.userID).Return(&domain.JournalEntry{Status: domain.StatusPending}, nil).Once()

	item, err := suite.service.RecordPurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(15)))
	suite.True(item.TotalValue.Equal(decimal.NewFromInt(1550000)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxSvc.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestRecordPurchase_OnCreditBooksPayable() {
	ctx := context.Background()
	req := dto.RecordPurchaseRequest{
		ItemID:   suite.item.ItemID,
		Date:     "2024-03-10",
		Quantity: decimal.NewFromInt(1),
		UnitCost: decimal.NewFromInt(100000),
		OnCredit: true,
	}

	suite.mockRepo.On("FindItemByID", ctx, suite.item.ItemID).Return(&suite.item, nil).Once()
	suite.mockRepo.On("SavePurchase", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxSvc.On("CreateTransaction", ctx, mock.MatchedBy(func(tx dto.CreateTransactionRequest) bool {
		return tx.TransactionType == "purchase_credit"
	}), suite.userID).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.RecordPurchase(ctx, req, suite.userID)

	suite.Require().NoError(err)
}

func (suite *InventoryServiceTestSuite) TestRecordUsage_FIFOCostAcrossLayers() {
	ctx := context.Background()
	layers := []domain.InventoryMovement{
		{MovementID: "l1", UnitCost: decimal.NewFromInt(100000), RemainingQuantity: decimal.NewFromInt(3)},
		{MovementID: "l2", UnitCost: decimal.NewFromInt(120000), RemainingQuantity: decimal.NewFromInt(5)},
	}
	req := dto.RecordUsageRequest{
		ItemID:   suite.item.ItemID,
		Date:     "2024-03-12",
		Quantity: decimal.NewFromInt(4),
	}
	// 3 @ 100000 from the oldest layer, 1 @ 120000 from the next.
	expectedCost := decimal.NewFromInt(420000)

	suite.mockRepo.On("FindItemByID", ctx, suite.item.ItemID).Return(&suite.item, nil).Once()
	suite.mockRepo.On("FindOpenPurchaseLayers", ctx, suite.item.ItemID).Return(layers, nil).Once()
	suite.mockRepo.On("SaveUsage", ctx, mock.MatchedBy(func(mv domain.InventoryMovement) bool {
		return mv.MovementType == domain.MovementUsage && mv.TotalCost.Equal(expectedCost)
	}), mock.MatchedBy(func(updated []domain.InventoryMovement) bool {
		return len(updated) == 2 &&
			updated[0].RemainingQuantity.IsZero() &&
			updated[1].RemainingQuantity.Equal(decimal.NewFromInt(4))
	})).Return(nil).Once()
	suite.mockTxSvc.On("CreateTransaction", ctx, mock.MatchedBy(func(tx dto.CreateTransactionRequest) bool {
		return tx.TransactionType == "inventory_usage" && tx.Amount.Equal(expectedCost)
	}), suite.userID).Return(&domain.JournalEntry{}, nil).Once()

	item, cost, err := suite.service.RecordUsage(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(cost.Equal(expectedCost), "got cost %s", cost)
	suite.True(item.Quantity.Equal(decimal.NewFromInt(6)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestRecordUsage_InsufficientStockFails() {
	ctx := context.Background()
	layers := []domain.InventoryMovement{
		{MovementID: "l1", UnitCost: decimal.NewFromInt(100000), RemainingQuantity: decimal.NewFromInt(2)},
	}
	req := dto.RecordUsageRequest{
		ItemID:   suite.item.ItemID,
		Date:     "2024-03-12",
		Quantity: decimal.NewFromInt(4),
	}

	suite.mockRepo.On("FindItemByID", ctx, suite.item.ItemID).Return(&suite.item, nil).Once()
	suite.mockRepo.On("FindOpenPurchaseLayers", ctx, suite.item.ItemID).Return(layers, nil).Once()

	_, _, err := suite.service.RecordUsage(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUsage", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestRecordPurchase_NonPositiveQuantityFails() {
	ctx := context.Background()
	req := dto.RecordPurchaseRequest{
		ItemID:   suite.item.ItemID,
		Date:     "2024-03-10",
		Quantity: decimal.Zero,
		UnitCost: decimal.NewFromInt(100000),
	}

	_, err := suite.service.RecordPurchase(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
