package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type VisitServiceTestSuite struct {
	suite.Suite
	visits     *MockVisitRepository
	houses     *MockHouseRepository
	notifier   *MockNotifier
	service    VisitService
	ctx        context.Context
	now        time.Time
	tenantID   uuid.UUID
	landlordID uuid.UUID
}

func (suite *VisitServiceTestSuite) SetupTest() {
	suite.visits = &MockVisitRepository{}
	suite.houses = &MockHouseRepository{}
	suite.notifier = &MockNotifier{}
	suite.visits.Test(suite.T())
	suite.houses.Test(suite.T())
	suite.notifier.Test(suite.T())

	suite.now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := NewVisitService(suite.visits, suite.houses, suite.notifier).(*visitService)
	svc.now = func() time.Time { return suite.now }
	suite.service = svc

	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.landlordID = uuid.New()
}

func (suite *VisitServiceTestSuite) TearDownTest() {
	suite.visits.AssertExpectations(suite.T())
	suite.houses.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func TestVisitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VisitServiceTestSuite))
}

func (suite *VisitServiceTestSuite) TestRequest_AddressedToLandlord() {
	house := &models.House{ID: uuid.New(), Title: "Kilimani 2BR", LandlordID: suite.landlordID}
	when := suite.now.Add(72 * time.Hour)
	suite.houses.On("GetByID", suite.ctx, house.ID).Return(house, nil).Once()
	suite.visits.On("Create", suite.ctx, mock.AnythingOfType("*models.VisitRequest")).Return(nil).Once()

	visit, err := suite.service.Request(suite.ctx, suite.tenantID, &VisitInput{
		HouseID:       house.ID.String(),
		Message:       "Saturday morning?",
		ScheduledDate: &when,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.landlordID, visit.RequestedTo)
	assert.Equal(suite.T(), suite.tenantID, visit.TenantID)
	assert.Equal(suite.T(), models.VisitPending, visit.Status)
	assert.Equal(suite.T(), &when, visit.ScheduledDate)
}

func (suite *VisitServiceTestSuite) TestRequest_PastDateRejected() {
	past := suite.now.Add(-time.Hour)
	_, err := suite.service.Request(suite.ctx, suite.tenantID, &VisitInput{HouseID: uuid.NewString(), ScheduledDate: &past})
	assert.True(suite.T(), errors.Is(err, ErrValidation))
	assert.EqualError(suite.T(), err, "scheduledDate must be in the future")
}

func (suite *VisitServiceTestSuite) TestRequest_HouseNotFound() {
	houseID := uuid.New()
	suite.houses.On("GetByID", suite.ctx, houseID).Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.Request(suite.ctx, suite.tenantID, &VisitInput{HouseID: houseID.String()})
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
	assert.EqualError(suite.T(), err, "House not found")
}

func (suite *VisitServiceTestSuite) pendingVisit() *models.VisitRequest {
	return &models.VisitRequest{
		ID:          uuid.New(),
		TenantID:    suite.tenantID,
		RequestedTo: suite.landlordID,
		Status:      models.VisitPending,
		Tenant:      &models.UserContact{ID: suite.tenantID, FullName: "Wanjiku", Email: "wanjiku@example.com", Phone: "+254700000001"},
		House:       &models.HouseRef{Title: "Kilimani 2BR"},
	}
}

func (suite *VisitServiceTestSuite) TestRespond_ApproveNotifiesTenant() {
	visit := suite.pendingVisit()
	suite.visits.On("GetByID", suite.ctx, visit.ID).Return(visit, nil).Once()
	suite.visits.On("SetStatus", suite.ctx, visit.ID, models.VisitApproved).Return(nil).Once()
	suite.notifier.On("SendEmail", suite.ctx, "wanjiku@example.com", "Your Visit Request has been approved",
		"Dear Wanjiku,\n\nYour request to visit the house \"Kilimani 2BR\" has been approved.\n\nRegards,\nSmart Rental Management Team").
		Return(nil).Once()
	suite.notifier.On("SendSMS", suite.ctx, "+254700000001",
		"Hi Wanjiku, your site visit request has been approved. - Smart Rentals").
		Return(errors.New("gateway down")).Once()

	got, err := suite.service.Respond(suite.ctx, Actor{ID: suite.landlordID, Role: models.RoleLandlord}, visit.ID, "approve")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.VisitApproved, got.Status)
}

func (suite *VisitServiceTestSuite) TestRespond_OnlyRecipient() {
	visit := suite.pendingVisit()
	suite.visits.On("GetByID", suite.ctx, visit.ID).Return(visit, nil).Once()

	_, err := suite.service.Respond(suite.ctx, Actor{ID: uuid.New(), Role: models.RoleCaretaker}, visit.ID, "approve")
	assert.True(suite.T(), errors.Is(err, ErrForbidden))
	assert.EqualError(suite.T(), err, "Unauthorized action")
	suite.visits.AssertNotCalled(suite.T(), "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VisitServiceTestSuite) TestRespond_InvalidAction() {
	visit := suite.pendingVisit()
	suite.visits.On("GetByID", suite.ctx, visit.ID).Return(visit, nil).Once()

	_, err := suite.service.Respond(suite.ctx, Actor{ID: suite.landlordID, Role: models.RoleLandlord}, visit.ID, "maybe")
	assert.True(suite.T(), errors.Is(err, ErrValidation))
	assert.EqualError(suite.T(), err, "Invalid action")
}

func (suite *VisitServiceTestSuite) TestRespond_NotFound() {
	id := uuid.New()
	suite.visits.On("GetByID", suite.ctx, id).Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.Respond(suite.ctx, Actor{ID: suite.landlordID}, id, "decline")
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
	assert.EqualError(suite.T(), err, "Visit not found")
}
