package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/postal_ledger/internal/apperrors"
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/core/services"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/SscSPs/postal_ledger/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStaffUserRepository
	cfg      *config.Config
	service  portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockStaffUserRepository)
	suite.cfg = &config.Config{
		AuthEnabled:       true,
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "postal-ledger-test",
	}
	suite.service = services.NewAuthService(suite.cfg, suite.mockRepo)
}

func (suite *AuthServiceTestSuite) staff(role domain.StaffRole) *domain.StaffUser {
	hash, err := utils.HashPassword("s3cret-pass")
	suite.Require().NoError(err)
	return &domain.StaffUser{UserID: "u-1", Username: "maria", PasswordHash: hash, Name: "Maria", Role: role}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindStaffUserByUsername", ctx, "maria").Return(suite.staff(domain.RoleBackOffice), nil).Once()

	token, expiresAt, user, err := suite.service.Login(ctx, " Maria ", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal("u-1", user.UserID)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, 2*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.Equal("u-1", claims.Subject)
	suite.Equal(string(domain.RoleBackOffice), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongCredentials() {
	ctx := context.Background()
	suite.mockRepo.On("FindStaffUserByUsername", ctx, "maria").Return(suite.staff(domain.RoleFrontDesk), nil).Once()
	suite.mockRepo.On("FindStaffUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, _, _, err := suite.service.Login(ctx, "maria", "wrong-pass")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, _, _, err = suite.service.Login(ctx, "ghost", "whatever1")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, _, _, err = suite.service.Login(ctx, "", "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestCreateStaffUser() {
	ctx := context.Background()
	suite.mockRepo.On("SaveStaffUser", ctx, mock.MatchedBy(func(u domain.StaffUser) bool {
		return u.Username == "joao" && u.Role == domain.RoleFrontDesk &&
			u.UserID != "" && utils.CheckPasswordHash("long-enough", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateStaffUser(ctx, "Joao", "long-enough", "João", domain.RoleFrontDesk)

	suite.Require().NoError(err)
	suite.Equal("joao", user.Username)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestCreateStaffUser_Rejects() {
	ctx := context.Background()

	_, err := suite.service.CreateStaffUser(ctx, "joao", "short", "", domain.RoleFrontDesk)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateStaffUser(ctx, "joao", "long-enough", "", "JANITOR")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.On("SaveStaffUser", ctx, mock.Anything).Return(apperrors.NewConflictError("username taken")).Once()
	_, err = suite.service.CreateStaffUser(ctx, "joao", "long-enough", "", domain.RoleAdmin)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestAuthorizeUserAction() {
	ctx := context.Background()
	suite.mockRepo.On("FindStaffUserByID", ctx, "u-1").Return(suite.staff(domain.RoleFrontDesk), nil)
	suite.mockRepo.On("FindStaffUserByID", ctx, "gone").Return(nil, apperrors.ErrNotFound)

	suite.NoError(suite.service.AuthorizeUserAction(ctx, "u-1", domain.RoleFrontDesk))
	suite.ErrorIs(suite.service.AuthorizeUserAction(ctx, "u-1", domain.RoleBackOffice), apperrors.ErrForbidden)
	suite.ErrorIs(suite.service.AuthorizeUserAction(ctx, "gone", domain.RoleFrontDesk), apperrors.ErrUnauthorized)
	suite.ErrorIs(suite.service.AuthorizeUserAction(ctx, "", domain.RoleFrontDesk), apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestNewServiceContainer_WiresAuthorizerOnlyWhenEnabled(t *testing.T) {
	ctx := context.Background()
	postingRepo := new(MockPostingRepository)
	staffRepo := new(MockStaffUserRepository)
	postingRepo.On("ListPendingPostings", ctx).Return([]domain.Posting{}, nil)
	staffRepo.On("FindStaffUserByID", ctx, "nobody").Return(nil, apperrors.ErrNotFound)
	repos := portsrepo.RepositoryProvider{
		PostingRepo:   postingRepo,
		ClosingRepo:   new(MockClosingRepository),
		StaffUserRepo: staffRepo,
	}

	cfg := &config.Config{JWTSecret: "x", JWTExpiryDuration: time.Hour}
	open := services.NewServiceContainer(cfg, repos)
	_, err := open.Pending.ListPending(ctx, "nobody")
	require.NoError(t, err)

	cfg.AuthEnabled = true
	guarded := services.NewServiceContainer(cfg, repos)
	_, err = guarded.Pending.ListPending(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
