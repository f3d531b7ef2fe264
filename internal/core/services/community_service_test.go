package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	"github.com/stackscoop/coop_ledger_app/internal/core/services"
	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCommunityRepository is a mock type for the CommunityRepositoryFacade interface
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) FindCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

func (m *MockCommunityRepository) FindCommunityIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommunityRepository) CreateCommunity(ctx context.Context, name, creator string, createdAt time.Time) (*domain.Community, error) {
	args := m.Called(ctx, name, creator, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

// --- Test Suite Setup ---

type CommunityServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCommunityRepository
	service  portssvc.CommunitySvcFacade
}

func (suite *CommunityServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCommunityRepository)
	suite.service = services.NewCommunityService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CommunityServiceTestSuite) TestCreateCommunity_Success() {
	ctx := context.Background()
	creator := "ST1CREATOR"
	req := dto.CreateCommunityRequest{Name: "garden-coop"}

	expected := &domain.Community{
		CommunityID: 1,
		Name:        req.Name,
		Admin:       creator,
		Status:      domain.CommunityActive,
		MemberCount: 1,
		CreatedAt:   time.Now().UTC(),
	}

	suite.mockRepo.On("FindCommunityIDByName", ctx, req.Name).
		Return(int64(0), apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateCommunity", ctx, req.Name, creator, mock.AnythingOfType("time.Time")).
		Return(expected, nil).Once()

	community, err := suite.service.CreateCommunity(ctx, req, creator)

	suite.Require().NoError(err)
	suite.Require().NotNil(community)
	suite.Equal(int64(1), community.CommunityID)
	suite.Equal(creator, community.Admin)
	suite.Equal(int64(1), community.MemberCount)
	suite.Equal(int64(0), community.TotalDonations)
	suite.Equal(int64(0), community.TotalSpending)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommunityServiceTestSuite) TestCreateCommunity_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateCommunityRequest{Name: "garden-coop"}

	suite.mockRepo.On("FindCommunityIDByName", ctx, req.Name).
		Return(int64(7), nil).Once()

	community, err := suite.service.CreateCommunity(ctx, req, "ST1CREATOR")

	suite.Require().Error(err)
	suite.Nil(community)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateCommunity")
}

func (suite *CommunityServiceTestSuite) TestCreateCommunity_RaceLosesToCompetingCreate() {
	// The pre-check passes but the unique constraint fires on insert.
	ctx := context.Background()
	req := dto.CreateCommunityRequest{Name: "garden-coop"}

	suite.mockRepo.On("FindCommunityIDByName", ctx, req.Name).
		Return(int64(0), apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateCommunity", ctx, req.Name, "ST1CREATOR", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewDuplicateError("community name taken")).Once()

	community, err := suite.service.CreateCommunity(ctx, req, "ST1CREATOR")

	suite.Require().Error(err)
	suite.Nil(community)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommunityServiceTestSuite) TestCreateCommunity_EmptyName() {
	community, err := suite.service.CreateCommunity(context.Background(), dto.CreateCommunityRequest{Name: ""}, "ST1CREATOR")

	suite.Require().Error(err)
	suite.Nil(community)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCommunityIDByName")
}

func (suite *CommunityServiceTestSuite) TestCreateCommunity_NameTooLong() {
	name := strings.Repeat("x", domain.MaxCommunityNameLength+1)

	community, err := suite.service.CreateCommunity(context.Background(), dto.CreateCommunityRequest{Name: name}, "ST1CREATOR")

	suite.Require().Error(err)
	suite.Nil(community)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CommunityServiceTestSuite) TestGetCommunityByID_Success() {
	ctx := context.Background()
	expected := &domain.Community{CommunityID: 42, Name: "garden-coop", Admin: "ST1CREATOR"}

	suite.mockRepo.On("FindCommunityByID", ctx, int64(42)).Return(expected, nil).Once()

	community, err := suite.service.GetCommunityByID(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(expected, community)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommunityServiceTestSuite) TestGetCommunityByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCommunityByID", ctx, int64(99)).
		Return(nil, apperrors.NewNotFoundError("community not found")).Once()

	community, err := suite.service.GetCommunityByID(ctx, 99)

	suite.Require().Error(err)
	suite.Nil(community)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CommunityServiceTestSuite) TestGetCommunityIDByName_Success() {
	ctx := context.Background()

	suite.mockRepo.On("FindCommunityIDByName", ctx, "garden-coop").Return(int64(42), nil).Once()

	communityID, err := suite.service.GetCommunityIDByName(ctx, "garden-coop")

	suite.Require().NoError(err)
	suite.Equal(int64(42), communityID)
}

func (suite *CommunityServiceTestSuite) TestGetCommunityIDByName_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCommunityIDByName", ctx, "nope").
		Return(int64(0), apperrors.NewNotFoundError("community not found")).Once()

	communityID, err := suite.service.GetCommunityIDByName(ctx, "nope")

	suite.Require().Error(err)
	suite.Equal(int64(0), communityID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestCommunityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommunityServiceTestSuite))
}
