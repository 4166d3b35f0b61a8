package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/handlers"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/platform/config"
	"github.com/ukmbooks/ukm_bookkeeping_app/pkg/metrics"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateEntryFromEvent(ctx context.Context, sourceType domain.TransactionType, entryDate time.Time, description string, lines []domain.JournalLine, requiresApproval *bool, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, sourceType, entryDate, description, lines, requiresApproval, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	args := m.Called(ctx, entryID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalService) ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) RejectEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ukm-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockJournalService = new(MockJournalService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger route setup
	}
	container := &portssvc.ServiceContainer{
		Journal: suite.mockJournalService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container, metrics.NewCollector())
}

func (suite *JournalHandlerTestSuite) postedEntry(entryID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     entryID,
		ReferenceNo: "JE-000007",
		SourceType:  domain.ManualJournal,
		EntryDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Office rent March",
		Status:      domain.StatusPosted,
		TotalAmount: decimal.NewFromInt(1500000),
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: domain.CodeRentExpense, EntryType: domain.Debit, Amount: decimal.NewFromInt(1500000)},
			{LineID: uuid.NewString(), EntryID: entryID, AccountCode: domain.CodeCash, EntryType: domain.Credit, Amount: decimal.NewFromInt(1500000)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournal_Success() {
	creatorUserID := uuid.NewString()
	entryID := uuid.NewString()
	expected := suite.postedEntry(entryID)

	suite.mockJournalService.On("CreateEntry",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
			return req.Description == "Office rent March" && len(req.Lines) == 2
		}),
		creatorUserID,
	).Return(expected, nil).Once()

	body := dto.CreateJournalRequest{
		Date:        "2024-03-10",
		Description: "Office rent March",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeRentExpense, EntryType: "debit", Amount: decimal.NewFromInt(1500000)},
			{AccountCode: domain.CodeCash, EntryType: "credit", Amount: decimal.NewFromInt(1500000)},
		},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(creatorUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-000007", resp.ReferenceNo)
	suite.Equal(domain.StatusPosted, resp.Status)
	suite.Len(resp.Lines, 2)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals", bytes.NewReader([]byte(`{}`)))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_SingleLineRejectedByBinding() {
	creatorUserID := uuid.NewString()

	body := dto.CreateJournalRequest{
		Date:        "2024-03-10",
		Description: "One-sided entry",
		Lines: []dto.JournalLineRequest{
			{AccountCode: domain.CodeCash, EntryType: "debit", Amount: decimal.NewFromInt(1000)},
		},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(creatorUserID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestGetJournal_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/journals/"+entryID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestApproveJournal_Success() {
	approverUserID := uuid.NewString()
	entryID := uuid.NewString()
	expected := suite.postedEntry(entryID)

	suite.mockJournalService.On("ApproveEntry", mock.Anything, entryID, approverUserID).
		Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals/"+entryID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(approverUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPosted, resp.Status)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestApproveJournal_SelfApprovalForbidden() {
	approverUserID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("ApproveEntry", mock.Anything, entryID, approverUserID).
		Return(nil, apperrors.ErrForbidden).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals/"+entryID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(approverUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostJournal_AlreadyPosted() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("PostEntry", mock.Anything, entryID, userID).
		Return(nil, apperrors.ErrAlreadyPosted).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journals/"+entryID+"/post", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestDeleteJournal_Success() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("DeleteEntry", mock.Anything, entryID, userID).
		Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/journals/"+entryID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
