package services_test

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockPostingRepository is a mock type for the PostingRepositoryFacade interface
type MockPostingRepository struct {
	mock.Mock
}

func (m *MockPostingRepository) FindPostingByID(ctx context.Context, postingID int64) (*domain.Posting, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByDay(ctx context.Context, date civil.Date, location *domain.Location) ([]domain.Posting, error) {
	args := m.Called(ctx, date, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPendingPostings(ctx context.Context) ([]domain.Posting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) ListPostingsByRange(ctx context.Context, start, end civil.Date) ([]domain.Posting, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) SavePosting(ctx context.Context, posting domain.Posting) (*domain.Posting, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingRepository) MarkPostingPaid(ctx context.Context, postingID int64, payment domain.Payment) (*domain.Posting, error) {
	args := m.Called(ctx, postingID, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

// MockClosingRepository is a mock type for the ClosingRepositoryFacade interface.
// SaveClosing returns the postings configured on the expectation to the builder,
// the way a store hands over the postings read inside its transaction.
type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) FindClosing(ctx context.Context, key domain.ClosingKey) (*domain.DailyClosing, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) ListClosings(ctx context.Context, start, end civil.Date) ([]domain.DailyClosing, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyClosing), args.Error(1)
}

func (m *MockClosingRepository) ListClosingRevisions(ctx context.Context, key domain.ClosingKey) ([]domain.ClosingRevision, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingRevision), args.Error(1)
}

func (m *MockClosingRepository) SaveClosing(ctx context.Context, key domain.ClosingKey, build portsrepo.ClosingBuilder) (*domain.DailyClosing, error) {
	args := m.Called(ctx, key)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	postings, _ := args.Get(0).([]domain.Posting)
	closing, err := build(postings)
	if err != nil {
		return nil, err
	}
	closing.ClosingID = 1
	closing.Revision = 1
	closing.CreatedAt = time.Now()
	closing.ClosedAt = closing.CreatedAt
	return &closing, nil
}

// MockStaffUserRepository is a mock type for the StaffUserRepository interface
type MockStaffUserRepository struct {
	mock.Mock
}

func (m *MockStaffUserRepository) SaveStaffUser(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStaffUserRepository) FindStaffUserByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

// MockAuthorizer is a mock type for the AuthorizerSvc interface
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.StaffRole) error {
	args := m.Called(ctx, userID, requiredRole)
	return args.Error(0)
}
