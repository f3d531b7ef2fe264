package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stackscoop/coop_ledger_app/internal/apperrors"
	"github.com/stackscoop/coop_ledger_app/internal/core/domain"
	portssvc "github.com/stackscoop/coop_ledger_app/internal/core/ports/services"
	"github.com/stackscoop/coop_ledger_app/internal/dto"
	"github.com/stackscoop/coop_ledger_app/internal/handlers"
	"github.com/stackscoop/coop_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CommunityService ---
type MockCommunityService struct {
	mock.Mock
}

func (m *MockCommunityService) CreateCommunity(ctx context.Context, req dto.CreateCommunityRequest, creator string) (*domain.Community, error) {
	args := m.Called(ctx, req, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityService) GetCommunityByID(ctx context.Context, communityID int64) (*domain.Community, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityService) GetCommunityIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.CommunitySvcFacade = (*MockCommunityService)(nil)

// --- Mock MembershipService ---
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) AuthorizeAdmin(ctx context.Context, communityID int64, caller string) error {
	args := m.Called(ctx, communityID, caller)
	return args.Error(0)
}
func (m *MockMembershipService) AuthorizeSubmitter(ctx context.Context, communityID int64, caller string) error {
	args := m.Called(ctx, communityID, caller)
	return args.Error(0)
}
func (m *MockMembershipService) AddMember(ctx context.Context, communityID int64, req dto.AddMemberRequest, caller string) (*domain.Membership, error) {
	args := m.Called(ctx, communityID, req, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipService) AddMembersBatch(ctx context.Context, communityID int64, req dto.AddMembersBatchRequest, caller string) (int, error) {
	args := m.Called(ctx, communityID, req, caller)
	return args.Int(0), args.Error(1)
}
func (m *MockMembershipService) UpdateMemberRole(ctx context.Context, communityID int64, account string, role domain.CommunityRole, caller string) error {
	args := m.Called(ctx, communityID, account, role, caller)
	return args.Error(0)
}
func (m *MockMembershipService) RemoveMember(ctx context.Context, communityID int64, account string, caller string) error {
	args := m.Called(ctx, communityID, account, caller)
	return args.Error(0)
}
func (m *MockMembershipService) GetMember(ctx context.Context, communityID int64, account string) (*domain.Membership, error) {
	args := m.Called(ctx, communityID, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipService) IsAdmin(ctx context.Context, communityID int64, account string) (bool, error) {
	args := m.Called(ctx, communityID, account)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.MembershipSvcFacade = (*MockMembershipService)(nil)

// --- Mock RecordService ---
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) SubmitRecord(ctx context.Context, communityID int64, req dto.SubmitRecordRequest, submitter string) (*domain.Record, error) {
	args := m.Called(ctx, communityID, req, submitter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}
func (m *MockRecordService) VerifyRecord(ctx context.Context, recordID int64, verifier string) error {
	args := m.Called(ctx, recordID, verifier)
	return args.Error(0)
}
func (m *MockRecordService) GetRecordByID(ctx context.Context, recordID int64) (*domain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}
func (m *MockRecordService) GetRecordCounter(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.RecordSvcFacade = (*MockRecordService)(nil)

// --- Test Suite ---

type CommunityHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockCommunityService  *MockCommunityService
	mockMembershipService *MockMembershipService
	mockRecordService     *MockRecordService
	jwtSecret             string
}

func (suite *CommunityHandlerTestSuite) generateTestToken(account string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "coop-ledger-test",
		Subject:   account,
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

func (suite *CommunityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockCommunityService = new(MockCommunityService)
	suite.mockMembershipService = new(MockMembershipService)
	suite.mockRecordService = new(MockRecordService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "coop-ledger-test",
		JWTExpiryDuration: time.Hour,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Community:  suite.mockCommunityService,
		Membership: suite.mockMembershipService,
		Record:     suite.mockRecordService,
	})
}

// doJSON performs an authenticated JSON request against the test router.
func (suite *CommunityHandlerTestSuite) doJSON(method, url, account string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if account != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(account))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Community tests ---

func (suite *CommunityHandlerTestSuite) TestCreateCommunity_Success() {
	creator := "ST1ALICE"
	expected := &domain.Community{
		CommunityID:    1,
		Name:           "garden-coop",
		Admin:          creator,
		Status:         domain.CommunityActive,
		TotalDonations: 0,
		TotalSpending:  0,
		MemberCount:    1,
		CreatedAt:      time.Now().UTC(),
	}

	suite.mockCommunityService.On("CreateCommunity",
		mock.Anything,
		dto.CreateCommunityRequest{Name: "garden-coop"},
		creator,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities", creator, gin.H{"name": "garden-coop"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CommunityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.CommunityID)
	suite.Equal(creator, resp.Admin)
	suite.Equal(int64(1), resp.MemberCount)
	suite.mockCommunityService.AssertExpectations(suite.T())
}

func (suite *CommunityHandlerTestSuite) TestCreateCommunity_DuplicateName() {
	suite.mockCommunityService.On("CreateCommunity", mock.Anything, mock.Anything, "ST1ALICE").
		Return(nil, fmt.Errorf("%w: community name \"garden-coop\" is already taken", apperrors.ErrDuplicate)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities", "ST1ALICE", gin.H{"name": "garden-coop"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestCreateCommunity_MissingToken() {
	w := suite.doJSON(http.MethodPost, "/api/v1/communities", "", gin.H{"name": "garden-coop"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCommunityService.AssertNotCalled(suite.T(), "CreateCommunity")
}

func (suite *CommunityHandlerTestSuite) TestGetCommunityTotals_Success() {
	expected := &domain.Community{
		CommunityID:    5,
		Name:           "garden-coop",
		Admin:          "ST1ALICE",
		TotalDonations: 12_000_000,
		TotalSpending:  3_500_000,
		MemberCount:    4,
	}

	suite.mockCommunityService.On("GetCommunityByID", mock.Anything, int64(5)).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/communities/5/totals", "ST1BOB", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CommunityTotalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(12_000_000), resp.TotalDonations)
	suite.Equal(int64(3_500_000), resp.TotalSpending)
}

func (suite *CommunityHandlerTestSuite) TestGetCommunity_NotFound() {
	suite.mockCommunityService.On("GetCommunityByID", mock.Anything, int64(99)).
		Return(nil, apperrors.NewNotFoundError("community not found")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/communities/99", "ST1BOB", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestGetCommunity_InvalidID() {
	w := suite.doJSON(http.MethodGet, "/api/v1/communities/banana", "ST1BOB", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCommunityService.AssertNotCalled(suite.T(), "GetCommunityByID")
}

// --- Membership tests ---

func (suite *CommunityHandlerTestSuite) TestAddMember_Success() {
	caller := "ST1ALICE"
	expected := &domain.Membership{
		CommunityID: 1,
		Account:     "ST1BOB",
		Role:        domain.RoleContributor,
		Active:      true,
		JoinedAt:    time.Now().UTC(),
	}

	suite.mockMembershipService.On("AddMember",
		mock.Anything,
		int64(1),
		dto.AddMemberRequest{Account: "ST1BOB", Role: domain.RoleContributor},
		caller,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/members", caller,
		gin.H{"account": "ST1BOB", "role": "CONTRIBUTOR"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MembershipResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ST1BOB", resp.Account)
	suite.True(resp.Active)
}

func (suite *CommunityHandlerTestSuite) TestAddMember_NotAdmin() {
	suite.mockMembershipService.On("AddMember", mock.Anything, int64(1), mock.Anything, "ST1MALLORY").
		Return(nil, apperrors.ErrNotAdmin).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/members", "ST1MALLORY",
		gin.H{"account": "ST1BOB", "role": "VIEWER"})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestAddMember_UnknownRoleRejectedByBinding() {
	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/members", "ST1ALICE",
		gin.H{"account": "ST1BOB", "role": "OVERLORD"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMembershipService.AssertNotCalled(suite.T(), "AddMember")
}

func (suite *CommunityHandlerTestSuite) TestAddMembersBatch_Success() {
	suite.mockMembershipService.On("AddMembersBatch", mock.Anything, int64(1), mock.MatchedBy(func(req dto.AddMembersBatchRequest) bool {
		return len(req.Members) == 2
	}), "ST1ALICE").Return(2, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/members/batch", "ST1ALICE", gin.H{
		"members": []gin.H{
			{"account": "ST1BOB", "role": "CONTRIBUTOR"},
			{"account": "ST1CAROL", "role": "VIEWER"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BatchAddResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Added)
}

func (suite *CommunityHandlerTestSuite) TestRemoveMember_Success() {
	suite.mockMembershipService.On("RemoveMember", mock.Anything, int64(1), "ST1BOB", "ST1ALICE").
		Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/communities/1/members/ST1BOB", "ST1ALICE", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestIsAdmin_Success() {
	suite.mockMembershipService.On("IsAdmin", mock.Anything, int64(1), "ST1BOB").
		Return(true, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/communities/1/members/ST1BOB/admin", "ST1CAROL", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.IsAdminResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsAdmin)
}

// --- Record tests ---

func (suite *CommunityHandlerTestSuite) TestSubmitRecord_Success() {
	submitter := "ST1BOB"
	amount := int64(5_000_000)
	expected := &domain.Record{
		RecordID:    11,
		CommunityID: 1,
		RecordType:  domain.RecordDonation,
		Amount:      amount,
		Description: "monthly donation",
		Submitter:   submitter,
		Timestamp:   time.Now().UTC(),
		Status:      domain.RecordPending,
	}

	suite.mockRecordService.On("SubmitRecord", mock.Anything, int64(1), mock.MatchedBy(func(req dto.SubmitRecordRequest) bool {
		return req.RecordType == domain.RecordDonation && req.Amount != nil && *req.Amount == amount
	}), submitter).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/records", submitter, gin.H{
		"recordType":  "DONATION",
		"amount":      amount,
		"description": "monthly donation",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(11), resp.RecordID)
	suite.Equal(domain.RecordPending, resp.Status)
}

func (suite *CommunityHandlerTestSuite) TestSubmitRecord_Unauthorized() {
	suite.mockRecordService.On("SubmitRecord", mock.Anything, int64(1), mock.Anything, "ST1VIEWER").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/communities/1/records", "ST1VIEWER", gin.H{
		"recordType":  "SPENDING",
		"amount":      100,
		"description": "supplies",
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestVerifyRecord_Success() {
	suite.mockRecordService.On("VerifyRecord", mock.Anything, int64(11), "ST1ALICE").
		Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/records/11/verify", "ST1ALICE", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestVerifyRecord_AlreadyVerified() {
	suite.mockRecordService.On("VerifyRecord", mock.Anything, int64(11), "ST1ALICE").
		Return(apperrors.NewConflictError("record is not pending verification")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/records/11/verify", "ST1ALICE", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *CommunityHandlerTestSuite) TestGetRecordCounter_Success() {
	suite.mockRecordService.On("GetRecordCounter", mock.Anything).
		Return(int64(42), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/records/counter", "ST1BOB", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RecordCounterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.Counter)
}

func TestCommunityHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CommunityHandlerTestSuite))
}
