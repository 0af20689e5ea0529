package services_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var day = civil.Date{Year: 2024, Month: time.March, Day: 12}

func methodPtr(m domain.PaymentMethod) *domain.PaymentMethod { return &m }
func datePtr(d civil.Date) *civil.Date                    { return &d }

type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPostingRepository
	service  portssvc.PostingSvcFacade
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPostingRepository)
	suite.service = services.NewPostingService(suite.mockRepo)
}

func (suite *PostingServiceTestSuite) validRequest() domain.NewPosting {
	return domain.NewPosting{
		PostingDate:  day,
		Location:     domain.ShoppingBolivia,
		SenderName:   "  Ana Souza ",
		TrackingCode: " br123 ",
		Amount:       decimal.RequireFromString("15.50"),
		ServiceTier:  domain.TierPAC,
	}
}

func (suite *PostingServiceTestSuite) TestAddPosting_NormalizesAndSaves() {
	ctx := context.Background()

	suite.mockRepo.On("SavePosting", ctx, mock.MatchedBy(func(p domain.Posting) bool {
		return p.TrackingCode == "BR123" && p.SenderName == "Ana Souza" && !p.Paid &&
			p.PaymentMethod == nil && p.PaymentDate == nil && p.Notes == nil
	})).Return(&domain.Posting{PostingID: 7, TrackingCode: "BR123"}, nil).Once()

	posting, err := suite.service.AddPosting(ctx, suite.validRequest(), "")

	suite.Require().NoError(err)
	suite.Equal(int64(7), posting.PostingID)
	suite.Equal("BR123", posting.TrackingCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestAddPosting_UnpaidDropsPaymentFields() {
	ctx := context.Background()
	req := suite.validRequest()
	req.PaymentMethod = methodPtr(domain.PaymentPIX)
	req.PaymentDate = datePtr(day)

	suite.mockRepo.On("SavePosting", ctx, mock.MatchedBy(func(p domain.Posting) bool {
		return p.PaymentMethod == nil && p.PaymentDate == nil
	})).Return(&domain.Posting{PostingID: 1}, nil).Once()

	_, err := suite.service.AddPosting(ctx, req, "")
	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestAddPosting_ValidationErrors() {
	ctx := context.Background()
	cases := map[string]func(*domain.NewPosting){
		"empty sender":        func(r *domain.NewPosting) { r.SenderName = "   " },
		"empty tracking code": func(r *domain.NewPosting) { r.TrackingCode = "" },
		"zero amount":         func(r *domain.NewPosting) { r.Amount = decimal.Zero },
		"negative amount":     func(r *domain.NewPosting) { r.Amount = decimal.RequireFromString("-1") },
		"three decimals":      func(r *domain.NewPosting) { r.Amount = decimal.RequireFromString("1.005") },
		"unknown location":    func(r *domain.NewPosting) { r.Location = 3 },
		"unknown tier":        func(r *domain.NewPosting) { r.ServiceTier = "EXPRESS" },
		"missing date":        func(r *domain.NewPosting) { r.PostingDate = civil.Date{} },
		"paid without method": func(r *domain.NewPosting) { r.Paid = true; r.PaymentDate = datePtr(day) },
		"paid without date":   func(r *domain.NewPosting) { r.Paid = true; r.PaymentMethod = methodPtr(domain.PaymentCash) },
		"paid bad method": func(r *domain.NewPosting) {
			r.Paid = true
			r.PaymentMethod = methodPtr("CARD")
			r.PaymentDate = datePtr(day)
		},
	}
	for name, mutate := range cases {
		suite.Run(name, func() {
			req := suite.validRequest()
			mutate(&req)
			_, err := suite.service.AddPosting(ctx, req, "")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePosting", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestAddPosting_DuplicateTrackingCode() {
	ctx := context.Background()
	suite.mockRepo.On("SavePosting", ctx, mock.Anything).Return(nil, apperrors.ErrDuplicateTrackingCode).Once()

	_, err := suite.service.AddPosting(ctx, suite.validRequest(), "")

	suite.ErrorIs(err, apperrors.ErrDuplicateTrackingCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PostingServiceTestSuite) TestAddPosting_PersistenceError() {
	ctx := context.Background()
	suite.mockRepo.On("SavePosting", ctx, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.AddPosting(ctx, suite.validRequest(), "")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *PostingServiceTestSuite) TestMarkPaid() {
	ctx := context.Background()
	payment := domain.Payment{Method: domain.PaymentPIX, Date: day, Notes: "  paid at desk "}
	expected := domain.Payment{Method: domain.PaymentPIX, Date: day, Notes: "paid at desk"}
	paid := &domain.Posting{PostingID: 3, Paid: true, PaymentMethod: methodPtr(domain.PaymentPIX), PaymentDate: datePtr(day)}

	suite.mockRepo.On("MarkPostingPaid", ctx, int64(3), expected).Return(paid, nil).Once()

	posting, err := suite.service.MarkPaid(ctx, 3, payment, "")

	suite.Require().NoError(err)
	suite.True(posting.Paid)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestMarkPaid_Errors() {
	ctx := context.Background()

	_, err := suite.service.MarkPaid(ctx, 3, domain.Payment{Method: "CARD", Date: day}, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.MarkPaid(ctx, 3, domain.Payment{Method: domain.PaymentCash}, "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.On("MarkPostingPaid", ctx, int64(404), mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.MarkPaid(ctx, 404, domain.Payment{Method: domain.PaymentCash, Date: day}, "")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.On("MarkPostingPaid", ctx, int64(5), mock.Anything).Return(nil, apperrors.ErrAlreadyPaid).Once()
	_, err = suite.service.MarkPaid(ctx, 5, domain.Payment{Method: domain.PaymentCash, Date: day}, "")
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (suite *PostingServiceTestSuite) TestListPostingsByDay() {
	ctx := context.Background()
	loc := domain.HotelFamily
	suite.mockRepo.On("ListPostingsByDay", ctx, day, &loc).Return(nil, nil).Once()

	postings, err := suite.service.ListPostingsByDay(ctx, day, &loc, "")

	suite.Require().NoError(err)
	suite.NotNil(postings)
	suite.Empty(postings)

	bad := domain.Location(9)
	_, err = suite.service.ListPostingsByDay(ctx, day, &bad, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestListPostingsByRange_RejectsInvertedRange() {
	_, err := suite.service.ListPostingsByRange(context.Background(), day, day.AddDays(-1), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestAuthorizerIsConsulted() {
	ctx := context.Background()
	authorizer := new(MockAuthorizer)
	svc := services.NewPostingService(suite.mockRepo, services.WithAuthorizer(authorizer))

	authorizer.On("AuthorizeUserAction", ctx, "u-1", domain.RoleFrontDesk).Return(apperrors.ErrForbidden).Once()

	_, err := svc.AddPosting(ctx, suite.validRequest(), "u-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePosting", mock.Anything, mock.Anything)
	authorizer.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

func TestPendingPaymentsService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPostingRepository)
	svc := services.NewPendingPaymentsService(repo)

	pending := []domain.Posting{{PostingID: 1, TrackingCode: "BR123"}}
	repo.On("ListPendingPostings", ctx).Return(pending, nil).Once()

	got, err := svc.ListPending(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, pending, got)

	repo.On("ListPendingPostings", ctx).Return(nil, assert.AnError).Once()
	_, err = svc.ListPending(ctx, "")
	assert.ErrorIs(t, err, assert.AnError)
}
