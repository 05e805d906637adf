package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ifd3f/DERP/internal/apperrors"
	"github.com/ifd3f/DERP/internal/core/domain"
	portssvc "github.com/ifd3f/DERP/internal/core/ports/services"
	"github.com/ifd3f/DERP/internal/core/services"
	"github.com/ifd3f/DERP/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FundingRepository ---
type MockFundingRepository struct {
	mock.Mock
}

func (m *MockFundingRepository) FindFundingByID(ctx context.Context, fundingID int64) (*domain.FundingLedgerRow, error) {
	args := m.Called(ctx, fundingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingLedgerRow), args.Error(1)
}

func (m *MockFundingRepository) ListFundingsByCostCenter(ctx context.Context, costCenterID int64) ([]domain.FundingLedgerRow, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundingLedgerRow), args.Error(1)
}

func (m *MockFundingRepository) FindFundingRowsByPathPrefix(ctx context.Context, path string) ([]domain.FundingLedgerRow, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundingLedgerRow), args.Error(1)
}

func (m *MockFundingRepository) SaveFunding(ctx context.Context, funding *domain.Funding) error {
	args := m.Called(ctx, funding)
	return args.Error(0)
}

// --- Mock CostCenterReader ---
type MockCostCenterReader struct {
	mock.Mock
}

func (m *MockCostCenterReader) FindCostCenterByID(ctx context.Context, costCenterID int64) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterReader) FindCostCenterByIDInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (*domain.CostCenter, error) {
	args := m.Called(ctx, tx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterReader) FindCostCentersByPathPrefixInTx(ctx context.Context, tx pgx.Tx, path string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, tx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterReader) ListRootCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterReader) ListChildCostCenters(ctx context.Context, parentID int64) ([]domain.CostCenter, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterReader) CountLedgerReferencesInTx(ctx context.Context, tx pgx.Tx, costCenterID int64) (int64, error) {
	args := m.Called(ctx, tx, costCenterID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type FundingServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockFundingRepository
	mockCCRepo *MockCostCenterReader
	service    portssvc.FundingSvcFacade
}

func (suite *FundingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFundingRepository)
	suite.mockCCRepo = new(MockCostCenterReader)
	suite.service = services.NewFundingService(suite.mockRepo, suite.mockCCRepo)
}

// --- Test Cases ---

func (suite *FundingServiceTestSuite) TestCreateFunding_Success() {
	ctx := context.Background()
	req := dto.CreateFundingRequest{
		Name:         "Yearly grant",
		CostCenterID: 3,
		FundingDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Credit:       decimal.RequireFromString("250.50"),
	}
	cc := &domain.CostCenter{CostCenterID: 3, Name: "Lab", Path: "/3"}

	suite.mockCCRepo.On("FindCostCenterByID", ctx, int64(3)).Return(cc, nil).Once()
	suite.mockRepo.On("SaveFunding", ctx, mock.MatchedBy(func(f *domain.Funding) bool {
		return f.Name == req.Name && f.CostCenterID == int64(3) && f.Credit.Equal(req.Credit)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Funding).FundingID = 7
	}).Return(nil).Once()

	row, err := suite.service.CreateFunding(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(row)
	suite.Equal(int64(7), row.FundingID)
	suite.Equal("Lab", row.CostCenterName)
	suite.True(row.Credit.Equal(req.Credit))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCCRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestCreateFunding_NonPositiveCredit() {
	ctx := context.Background()
	req := dto.CreateFundingRequest{
		Name:         "Empty grant",
		CostCenterID: 3,
		FundingDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Credit:       decimal.Zero,
	}

	row, err := suite.service.CreateFunding(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(row)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFunding", mock.Anything, mock.Anything)
}

func (suite *FundingServiceTestSuite) TestCreateFunding_UnknownCostCenter() {
	ctx := context.Background()
	req := dto.CreateFundingRequest{
		Name:         "Grant",
		CostCenterID: 99,
		FundingDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Credit:       decimal.NewFromInt(10),
	}

	suite.mockCCRepo.On("FindCostCenterByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	row, err := suite.service.CreateFunding(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(row)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFunding", mock.Anything, mock.Anything)
	suite.mockCCRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestCreateFunding_SaveError() {
	ctx := context.Background()
	req := dto.CreateFundingRequest{
		Name:         "Grant",
		CostCenterID: 3,
		FundingDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Credit:       decimal.NewFromInt(10),
	}
	cc := &domain.CostCenter{CostCenterID: 3, Name: "Lab", Path: "/3"}
	expectedErr := assert.AnError

	suite.mockCCRepo.On("FindCostCenterByID", ctx, int64(3)).Return(cc, nil).Once()
	suite.mockRepo.On("SaveFunding", ctx, mock.AnythingOfType("*domain.Funding")).Return(expectedErr).Once()

	row, err := suite.service.CreateFunding(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(row)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestGetFunding_Success() {
	ctx := context.Background()
	expected := &domain.FundingLedgerRow{
		Funding:        domain.Funding{FundingID: 7, Name: "Grant"},
		CostCenterName: "Lab",
	}

	suite.mockRepo.On("FindFundingByID", ctx, int64(7)).Return(expected, nil).Once()

	row, err := suite.service.GetFunding(ctx, int64(7))

	suite.Require().NoError(err)
	suite.Equal(expected, row)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestGetFunding_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindFundingByID", ctx, int64(8)).Return(nil, apperrors.ErrNotFound).Once()

	row, err := suite.service.GetFunding(ctx, int64(8))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(row)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestListFundingsByCostCenter_Success() {
	ctx := context.Background()
	cc := &domain.CostCenter{CostCenterID: 3, Name: "Lab", Path: "/3"}
	expected := []domain.FundingLedgerRow{
		{Funding: domain.Funding{FundingID: 2, Name: "Top-up"}, CostCenterName: "Lab"},
		{Funding: domain.Funding{FundingID: 1, Name: "Grant"}, CostCenterName: "Lab"},
	}

	suite.mockCCRepo.On("FindCostCenterByID", ctx, int64(3)).Return(cc, nil).Once()
	suite.mockRepo.On("ListFundingsByCostCenter", ctx, int64(3)).Return(expected, nil).Once()

	rows, err := suite.service.ListFundingsByCostCenter(ctx, int64(3))

	suite.Require().NoError(err)
	suite.Equal(expected, rows)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCCRepo.AssertExpectations(suite.T())
}

func (suite *FundingServiceTestSuite) TestListFundingsByCostCenter_UnknownCostCenter() {
	ctx := context.Background()

	suite.mockCCRepo.On("FindCostCenterByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	rows, err := suite.service.ListFundingsByCostCenter(ctx, int64(99))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(rows)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListFundingsByCostCenter", mock.Anything, mock.Anything)
}

func TestFundingServiceSuite(t *testing.T) {
	suite.Run(t, new(FundingServiceTestSuite))
}
