package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service/mocks"
	"github.com/fsdevblog/adashi/internal/service/tokens"
	"github.com/fsdevblog/adashi/pkg/uow"
	uowmocks "github.com/fsdevblog/adashi/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockUOW        *uowmocks.MockUOW
	mockUserRepo   *mocks.MockUserRepository
	mockHasher     *mocks.MockPasswordHasher
	accountService *AccountService
	secret         []byte
	admin          domain.Actor
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockHasher = mocks.NewMockPasswordHasher(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	s.secret = []byte(gofakeit.Password(true, true, true, false, false, 32))
	s.admin = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	accountService, err := NewAccountService(s.mockUOW, s.secret, s.mockHasher)
	s.Require().NoError(err)
	s.accountService = accountService
}

func (s *AccountServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AccountServiceTestSuite) TestLogin() {
	user := &domain.User{
		ID:                uuid.New(),
		Email:             gofakeit.Email(),
		Role:              domain.RoleMember,
		EncryptedPassword: "hash",
	}
	password := gofakeit.Password(true, true, true, false, false, 10)

	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), user.Email).Return(user, nil)
	s.mockHasher.EXPECT().ComparePassword(password, "hash").Return(true)

	got, token, err := s.accountService.Login(context.Background(), LoginArgs{Login: user.Email, Password: password})
	s.Require().NoError(err)
	s.Equal(user, got)

	claims, err := tokens.ValidateUserJWT(token, s.secret)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.ID)
	s.Equal(domain.RoleMember, claims.Role)
}

func (s *AccountServiceTestSuite) TestLoginWrongPassword() {
	user := &domain.User{ID: uuid.New(), PhoneNumber: gofakeit.Phone(), EncryptedPassword: "hash"}

	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), user.PhoneNumber).Return(user, nil)
	s.mockHasher.EXPECT().ComparePassword("wrong", "hash").Return(false)

	_, _, err := s.accountService.Login(context.Background(), LoginArgs{Login: user.PhoneNumber, Password: "wrong"})
	s.Require().ErrorIs(err, domain.ErrPasswordMissMatch)
}

func (s *AccountServiceTestSuite) TestLoginUnknownUser() {
	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), "nobody").Return(nil, domain.ErrRecordNotFound)

	_, _, err := s.accountService.Login(context.Background(), LoginArgs{Login: "nobody", Password: "x"})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *AccountServiceTestSuite) TestCreateMemberDefaults() {
	fullName := gofakeit.Name()

	s.mockHasher.EXPECT().HashPassword("+234 803-555-0101").Return("hashed", nil)
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u repoargs.CreateUser) (*domain.User, error) {
			s.Equal("2348035550101@adashi.local", u.Email)
			s.Equal(fullName, u.FullName)
			s.Equal(domain.RoleMember, u.Role)
			s.Equal("hashed", u.EncryptedPassword)
			return &domain.User{ID: uuid.New(), Email: u.Email, FullName: u.FullName, Role: u.Role}, nil
		})

	user, creds, err := s.accountService.CreateMember(context.Background(), s.admin, CreateMemberArgs{
		FullName:    " " + fullName + " ",
		PhoneNumber: "+234 803-555-0101",
	})
	s.Require().NoError(err)
	s.Equal(domain.RoleMember, user.Role)
	s.Equal("2348035550101@adashi.local", creds.Login)
	s.Equal("+234 803-555-0101", creds.Password)
}

func (s *AccountServiceTestSuite) TestCreateMemberWithEmailAndPassword() {
	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	s.mockHasher.EXPECT().HashPassword(password).Return("hashed", nil)
	s.mockUserRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		Return(&domain.User{ID: uuid.New(), Email: email}, nil)

	_, creds, err := s.accountService.CreateMember(context.Background(), s.admin, CreateMemberArgs{
		FullName:    gofakeit.Name(),
		PhoneNumber: "08035550101",
		Email:       email,
		Password:    password,
	})
	s.Require().NoError(err)
	s.Equal(password, creds.Password)
}

func (s *AccountServiceTestSuite) TestCreateMemberDuplicate() {
	s.mockHasher.EXPECT().HashPassword(gomock.Any()).Return("hashed", nil)
	s.mockUserRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateKey)

	_, _, err := s.accountService.CreateMember(context.Background(), s.admin, CreateMemberArgs{
		FullName:    gofakeit.Name(),
		PhoneNumber: "08035550101",
	})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
}

func (s *AccountServiceTestSuite) TestCreateMemberValidation() {
	cases := map[string]CreateMemberArgs{
		"empty name":  {PhoneNumber: "08035550101"},
		"short phone": {FullName: gofakeit.Name(), PhoneNumber: "12-34"},
	}
	for name, args := range cases {
		s.Run(name, func() {
			_, _, err := s.accountService.CreateMember(context.Background(), s.admin, args)
			s.Require().ErrorIs(err, domain.ErrValidation)
		})
	}
}

func (s *AccountServiceTestSuite) TestCreateMemberForbidden() {
	member := domain.Actor{UserID: uuid.New(), Role: domain.RoleMember}

	_, _, err := s.accountService.CreateMember(context.Background(), member, CreateMemberArgs{})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *AccountServiceTestSuite) TestSearchMembers() {
	users := []domain.User{{ID: uuid.New(), FullName: gofakeit.Name()}}
	s.mockUserRepo.EXPECT().Search(gomock.Any(), "ada", domain.RoleMember, uint(searchLimit)).Return(users, nil)

	got, err := s.accountService.SearchMembers(context.Background(), s.admin, "ada")
	s.Require().NoError(err)
	s.Equal(users, got)
}

func (s *AccountServiceTestSuite) TestEnsureAdminCreates() {
	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), strings.ToLower(email)).
		Return(nil, fmt.Errorf("find user: %w", domain.ErrRecordNotFound))
	s.mockHasher.EXPECT().HashPassword(password).Return("hash", nil)
	s.mockUserRepo.EXPECT().CreateUser(gomock.Any(), repoargs.CreateUser{
		Email:             strings.ToLower(email),
		FullName:          "Administrator",
		PhoneNumber:       strings.ToLower(email),
		Role:              domain.RoleAdmin,
		EncryptedPassword: "hash",
	}).Return(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin}, nil)

	created, err := s.accountService.EnsureAdmin(context.Background(), EnsureAdminArgs{
		Email:    email,
		Password: password,
	})
	s.Require().NoError(err)
	s.True(created)
}

func (s *AccountServiceTestSuite) TestEnsureAdminExists() {
	email := gofakeit.Email()
	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), strings.ToLower(email)).
		Return(&domain.User{ID: uuid.New(), Role: domain.RoleAdmin}, nil)

	created, err := s.accountService.EnsureAdmin(context.Background(), EnsureAdminArgs{
		Email:    email,
		Password: "secret",
	})
	s.Require().NoError(err)
	s.False(created)
}

func (s *AccountServiceTestSuite) TestEnsureAdminRepoError() {
	s.mockUserRepo.EXPECT().FindUserByLogin(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("find user: %w", domain.ErrUnknown))

	_, err := s.accountService.EnsureAdmin(context.Background(), EnsureAdminArgs{
		Email:    gofakeit.Email(),
		Password: "secret",
	})
	s.Require().ErrorIs(err, domain.ErrUnknown)
}
