package handlers_test

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) GetPosting(ctx context.Context, id int64, userID string) (*domain.Posting, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingService) ListPostingsByDay(ctx context.Context, date civil.Date, loc *domain.Location, userID string) ([]domain.Posting, error) {
	args := m.Called(ctx, date, loc, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingService) ListPostingsByRange(ctx context.Context, start, end civil.Date, userID string) ([]domain.Posting, error) {
	args := m.Called(ctx, start, end, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockPostingService) AddPosting(ctx context.Context, np domain.NewPosting, userID string) (*domain.Posting, error) {
	args := m.Called(ctx, np, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

func (m *MockPostingService) MarkPaid(ctx context.Context, id int64, payment domain.Payment, userID string) (*domain.Posting, error) {
	args := m.Called(ctx, id, payment, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock PendingPaymentsService ---
type MockPendingService struct {
	mock.Mock
}

func (m *MockPendingService) ListPending(ctx context.Context, userID string) ([]domain.Posting, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

var _ portssvc.PendingPaymentsSvc = (*MockPendingService)(nil)

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) GetClosing(ctx context.Context, key domain.ClosingKey, userID string) (*domain.DailyClosing, error) {
	args := m.Called(ctx, key, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyClosing), args.Error(1)
}

func (m *MockClosingService) GetClosingReport(ctx context.Context, key domain.ClosingKey, userID string) (*domain.ClosingReport, error) {
	args := m.Called(ctx, key, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingReport), args.Error(1)
}

func (m *MockClosingService) ListClosings(ctx context.Context, start, end civil.Date, userID string) ([]domain.DailyClosing, error) {
	args := m.Called(ctx, start, end, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyClosing), args.Error(1)
}

func (m *MockClosingService) ListRevisions(ctx context.Context, key domain.ClosingKey, userID string) ([]domain.ClosingRevision, error) {
	args := m.Called(ctx, key, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingRevision), args.Error(1)
}

func (m *MockClosingService) CloseDay(ctx context.Context, req domain.CloseDayRequest, userID string) (*domain.ClosingReport, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingReport), args.Error(1)
}

var _ portssvc.ClosingSvcFacade = (*MockClosingService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DailySummary(ctx context.Context, date civil.Date, loc *domain.Location, userID string) (*domain.DailyReport, error) {
	args := m.Called(ctx, date, loc, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyReport), args.Error(1)
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, month domain.Month, loc *domain.Location, userID string) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, month, loc, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) AuthorizeUserAction(ctx context.Context, userID string, role domain.StaffRole) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.StaffUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(2) == nil {
		return "", time.Time{}, nil, args.Error(3)
	}
	return args.String(0), args.Get(1).(time.Time), args.Get(2).(*domain.StaffUser), args.Error(3)
}

func (m *MockAuthService) CreateStaffUser(ctx context.Context, username, password, name string, role domain.StaffRole) (*domain.StaffUser, error) {
	args := m.Called(ctx, username, password, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)
