package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClosingServiceTestSuite struct {
	suite.Suite
	closingRepo *MockClosingRepository
	postingRepo *MockPostingRepository
	service     portssvc.ClosingSvcFacade
	key         domain.ClosingKey
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.closingRepo = new(MockClosingRepository)
	suite.postingRepo = new(MockPostingRepository)
	suite.service = services.NewClosingService(suite.closingRepo, suite.postingRepo)
	suite.key = domain.ClosingKey{Date: day, Location: domain.ShoppingBolivia}
}

func (suite *ClosingServiceTestSuite) dayPostings() []domain.Posting {
	return []domain.Posting{
		{PostingID: 2, PostingDate: day, Location: domain.ShoppingBolivia, TrackingCode: "BR456",
			Amount: decimal.RequireFromString("30.00"), ServiceTier: domain.TierSEDEX,
			Paid: true, PaymentMethod: methodPtr(domain.PaymentPIX), PaymentDate: datePtr(day)},
		{PostingID: 1, PostingDate: day, Location: domain.ShoppingBolivia, TrackingCode: "BR123",
			Amount: decimal.RequireFromString("15.50"), ServiceTier: domain.TierPAC},
	}
}

func (suite *ClosingServiceTestSuite) TestCloseDay_ComputesTotals() {
	ctx := context.Background()
	suite.closingRepo.On("SaveClosing", ctx, suite.key).Return(suite.dayPostings(), nil).Once()

	report, err := suite.service.CloseDay(ctx, domain.CloseDayRequest{
		Date: day, Location: domain.ShoppingBolivia, Operator: "  Maria ", Notes: " ",
	}, "")

	suite.Require().NoError(err)
	closing := report.Closing
	suite.Equal("Maria", closing.Operator)
	suite.Nil(closing.Notes)
	suite.Equal(2, closing.TotalPostings)
	suite.True(decimal.RequireFromString("45.50").Equal(closing.TotalAmount))
	suite.Equal(1, closing.TotalPAC)
	suite.Equal(1, closing.TotalSEDEX)
	suite.True(decimal.RequireFromString("30.00").Equal(closing.TotalPIX))
	suite.True(closing.TotalCash.IsZero())
	suite.Len(report.Postings, 2)
	suite.closingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseDay_NoPostings() {
	ctx := context.Background()
	suite.closingRepo.On("SaveClosing", ctx, suite.key).Return([]domain.Posting{}, nil).Once()

	_, err := suite.service.CloseDay(ctx, domain.CloseDayRequest{
		Date: day, Location: domain.ShoppingBolivia, Operator: "Maria",
	}, "")

	suite.ErrorIs(err, apperrors.ErrNoPostings)
}

func (suite *ClosingServiceTestSuite) TestCloseDay_Validation() {
	ctx := context.Background()
	cases := map[string]domain.CloseDayRequest{
		"blank operator":   {Date: day, Location: domain.ShoppingBolivia, Operator: "   "},
		"unknown location": {Date: day, Location: 0, Operator: "Maria"},
		"missing date":     {Location: domain.HotelFamily, Operator: "Maria"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.CloseDay(ctx, req, "")
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.closingRepo.AssertNotCalled(suite.T(), "SaveClosing", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestCloseDay_PersistenceError() {
	ctx := context.Background()
	suite.closingRepo.On("SaveClosing", ctx, suite.key).Return(nil, assert.AnError).Once()

	_, err := suite.service.CloseDay(ctx, domain.CloseDayRequest{
		Date: day, Location: domain.ShoppingBolivia, Operator: "Maria",
	}, "")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *ClosingServiceTestSuite) TestCloseDay_RequiresBackOffice() {
	ctx := context.Background()
	authorizer := new(MockAuthorizer)
	svc := services.NewClosingService(suite.closingRepo, suite.postingRepo, services.WithAuthorizer(authorizer))
	authorizer.On("AuthorizeUserAction", ctx, "desk", domain.RoleBackOffice).Return(apperrors.ErrForbidden).Once()

	_, err := svc.CloseDay(ctx, domain.CloseDayRequest{Date: day, Location: domain.ShoppingBolivia, Operator: "Maria"}, "desk")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	authorizer.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestGetClosingReport() {
	ctx := context.Background()
	closing := &domain.DailyClosing{ClosingID: 1, ClosingDate: day, Location: domain.ShoppingBolivia, Revision: 2}
	suite.closingRepo.On("FindClosing", ctx, suite.key).Return(closing, nil).Once()
	suite.postingRepo.On("ListPostingsByDay", ctx, day, mock.MatchedBy(func(l *domain.Location) bool {
		return l != nil && *l == domain.ShoppingBolivia
	})).Return(suite.dayPostings(), nil).Once()

	report, err := suite.service.GetClosingReport(ctx, suite.key, "")

	suite.Require().NoError(err)
	suite.Equal(2, report.Closing.Revision)
	suite.Len(report.Postings, 2)
}

func (suite *ClosingServiceTestSuite) TestGetClosing_NotFound() {
	ctx := context.Background()
	suite.closingRepo.On("FindClosing", ctx, suite.key).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetClosing(ctx, suite.key, "")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ClosingServiceTestSuite) TestListClosingsAndRevisions() {
	ctx := context.Background()
	suite.closingRepo.On("ListClosings", ctx, day, day.AddDays(6)).Return(nil, nil).Once()
	suite.closingRepo.On("ListClosingRevisions", ctx, suite.key).
		Return([]domain.ClosingRevision{{Revision: 1}, {Revision: 2}}, nil).Once()

	closings, err := suite.service.ListClosings(ctx, day, day.AddDays(6), "")
	suite.Require().NoError(err)
	suite.NotNil(closings)

	revisions, err := suite.service.ListRevisions(ctx, suite.key, "")
	suite.Require().NoError(err)
	suite.Len(revisions, 2)

	_, err = suite.service.ListClosings(ctx, day, day.AddDays(-1), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
