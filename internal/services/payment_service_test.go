package services

import (
	"bytes"
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

type PaymentServiceTestSuite struct {
	suite.Suite
	payments   *MockPaymentRepository
	agreements *MockAgreementRepository
	users      *MockUserRepository
	houses     *MockHouseRepository
	notifier   *MockNotifier
	storage    *MockReceiptStore
	service    PaymentService
	ctx        context.Context
	tenantID   uuid.UUID
	now        time.Time
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.payments = &MockPaymentRepository{}
	suite.agreements = &MockAgreementRepository{}
	suite.users = &MockUserRepository{}
	suite.houses = &MockHouseRepository{}
	suite.notifier = &MockNotifier{}
	suite.storage = &MockReceiptStore{}
	for _, m := range []interface{ Test(mock.TestingT) }{suite.payments, suite.agreements, suite.users, suite.houses, suite.notifier, suite.storage} {
		m.Test(suite.T())
	}

	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.now = time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC)
	suite.service = suite.newService(suite.storage)
}

func (suite *PaymentServiceTestSuite) newService(storage ReceiptStore) PaymentService {
	svc := NewPaymentService(suite.payments, suite.agreements, suite.users, suite.houses, suite.notifier, storage)
	svc.(*paymentService).now = func() time.Time { return suite.now }
	return svc
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.payments.AssertExpectations(suite.T())
	suite.agreements.AssertExpectations(suite.T())
	suite.users.AssertExpectations(suite.T())
	suite.houses.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
	suite.storage.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) TestPayRent_Success() {
	agreement := &models.RentalAgreement{ID: uuid.New(), TenantID: suite.tenantID, HouseID: uuid.New(), MonthlyRent: 25000}
	suite.agreements.On("GetByID", suite.ctx, agreement.ID).Return(agreement, nil).Once()
	suite.payments.On("Create", suite.ctx, mock.AnythingOfType("*models.RentPayment")).Return(nil).Once()

	payment, err := suite.service.PayRent(suite.ctx, suite.tenantID, &PayRentInput{
		AgreementID:   agreement.ID.String(),
		AmountPaid:    25000,
		PaymentMethod: " Mpesa ",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), agreement.HouseID, payment.HouseID)
	assert.Equal(suite.T(), "Mpesa", payment.PaymentMethod)
	assert.Equal(suite.T(), suite.now, payment.PaymentDate)
	assert.Equal(suite.T(), "RNT-1772524800000", payment.ReceiptID)
}

func (suite *PaymentServiceTestSuite) TestPayRent_OtherTenantsAgreement() {
	agreement := &models.RentalAgreement{ID: uuid.New(), TenantID: uuid.New()}
	suite.agreements.On("GetByID", suite.ctx, agreement.ID).Return(agreement, nil).Once()

	_, err := suite.service.PayRent(suite.ctx, suite.tenantID, &PayRentInput{AgreementID: agreement.ID.String(), AmountPaid: 100, PaymentMethod: "Mpesa"})
	assert.True(suite.T(), errors.Is(err, ErrForbidden))
	assert.EqualError(suite.T(), err, "Unauthorized or agreement not found")
}

func (suite *PaymentServiceTestSuite) TestPayRent_MissingAgreement() {
	id := uuid.New()
	suite.agreements.On("GetByID", suite.ctx, id).Return(nil, repositories.ErrNotFound).Once()

	_, err := suite.service.PayRent(suite.ctx, suite.tenantID, &PayRentInput{AgreementID: id.String(), AmountPaid: 100, PaymentMethod: "Card"})
	assert.True(suite.T(), errors.Is(err, ErrForbidden))
}

func (suite *PaymentServiceTestSuite) TestPayRent_Validation() {
	_, err := suite.service.PayRent(suite.ctx, suite.tenantID, &PayRentInput{AgreementID: uuid.NewString()})
	assert.True(suite.T(), errors.Is(err, ErrValidation))
}

func (suite *PaymentServiceTestSuite) TestPayRent_MethodRequired() {
	_, err := suite.service.PayRent(suite.ctx, suite.tenantID, &PayRentInput{
		AgreementID:   uuid.NewString(),
		AmountPaid:    100,
		PaymentMethod: "  ",
	})
	assert.True(suite.T(), errors.Is(err, ErrValidation))
	assert.EqualError(suite.T(), err, "agreementId, amountPaid, and paymentMethod are required")
	suite.payments.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) ownedPayment() (*models.RentPayment, *models.User, *models.House) {
	house := &models.House{ID: uuid.New(), Title: "Kilimani 2BR", Location: models.Location{Town: "Nairobi", County: "Nairobi"}}
	tenant := &models.User{ID: suite.tenantID, FullName: "Wanjiku", Email: "wanjiku@example.com"}
	payment := &models.RentPayment{
		ID:            uuid.New(),
		TenantID:      suite.tenantID,
		HouseID:       house.ID,
		AmountPaid:    25000,
		PaymentDate:   suite.now,
		PaymentMethod: "Mpesa",
		ReceiptID:     "RNT-1",
	}
	suite.payments.On("GetByID", suite.ctx, payment.ID).Return(payment, nil).Once()
	suite.users.On("GetByID", suite.ctx, suite.tenantID).Return(tenant, nil).Once()
	suite.houses.On("GetByID", suite.ctx, house.ID).Return(house, nil).Once()
	return payment, tenant, house
}

func (suite *PaymentServiceTestSuite) TestReceipt_RendersAndArchives() {
	payment, _, _ := suite.ownedPayment()
	objectName := suite.tenantID.String() + "/RNT-1.pdf"
	suite.storage.On("Put", suite.ctx, objectName, mock.AnythingOfType("[]uint8"), "application/pdf").
		Return(nil).Once()

	file, err := suite.service.Receipt(suite.ctx, suite.tenantID, payment.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), bytes.HasPrefix(file.Content, []byte("%PDF")))
	assert.Equal(suite.T(), "receipt-"+payment.ID.String()+".pdf", file.Name)
}

func (suite *PaymentServiceTestSuite) TestReceipt_ArchiveFailureIsIgnored() {
	payment, _, _ := suite.ownedPayment()
	suite.storage.On("Put", suite.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("minio down")).Once()

	file, err := suite.service.Receipt(suite.ctx, suite.tenantID, payment.ID)
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), file.Content)
}

func (suite *PaymentServiceTestSuite) TestReceipt_NotOwner() {
	payment := &models.RentPayment{ID: uuid.New(), TenantID: uuid.New()}
	suite.payments.On("GetByID", suite.ctx, payment.ID).Return(payment, nil).Once()

	_, err := suite.service.Receipt(suite.ctx, suite.tenantID, payment.ID)
	assert.True(suite.T(), errors.Is(err, ErrDenied))
	assert.EqualError(suite.T(), err, "Receipt not found or unauthorized")
}

func (suite *PaymentServiceTestSuite) TestReceiptURL() {
	payment, _, _ := suite.ownedPayment()
	objectName := suite.tenantID.String() + "/RNT-1.pdf"
	suite.storage.On("Put", suite.ctx, objectName, mock.Anything, "application/pdf").Return(nil).Once()
	suite.storage.On("SignedURL", suite.ctx, objectName, "receipt-"+payment.ID.String()+".pdf", 15*time.Minute).
		Return("https://minio.local/receipts/x", nil).Once()

	url, err := suite.service.ReceiptURL(suite.ctx, suite.tenantID, payment.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://minio.local/receipts/x", url)
}

func (suite *PaymentServiceTestSuite) TestReceiptURL_NoStorage() {
	svc := suite.newService(nil)
	_, err := svc.ReceiptURL(suite.ctx, suite.tenantID, uuid.New())
	assert.Error(suite.T(), err)
}

func (suite *PaymentServiceTestSuite) TestEmailReceipt_WithoutStorage() {
	svc := suite.newService(nil)
	payment, tenant, _ := suite.ownedPayment()
	suite.notifier.On("SendEmail", suite.ctx, tenant.Email, "Your Rent Payment Receipt", mock.MatchedBy(func(text string) bool {
		return bytes.Contains([]byte(text), []byte("RNT-1")) && bytes.Contains([]byte(text), []byte("KES 25000"))
	})).Return(nil).Once()

	assert.NoError(suite.T(), svc.EmailReceipt(suite.ctx, suite.tenantID, payment.ID))
}

func (suite *PaymentServiceTestSuite) TestEarningsSummary() {
	landlordID := uuid.New()
	want := []models.MonthlyEarnings{{Month: "Mar 2026", Total: 50000, Count: 2}}
	suite.payments.On("MonthlyTotals", suite.ctx, landlordID).Return(want, nil).Once()

	got, err := suite.service.EarningsSummary(suite.ctx, landlordID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), want, got)
}
