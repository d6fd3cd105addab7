package service

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service/mocks"
	"github.com/fsdevblog/adashi/pkg/uow"
	uowmocks "github.com/fsdevblog/adashi/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SchemeServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockSchemeRepo      *mocks.MockSchemeRepository
	mockMembershipRepo  *mocks.MockMembershipRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	schemeService       *SchemeService

	loc   *time.Location
	now   time.Time
	admin domain.Actor
}

func TestSchemeServiceSuite(t *testing.T) {
	suite.Run(t, new(SchemeServiceTestSuite))
}

func (s *SchemeServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockSchemeRepo = mocks.NewMockSchemeRepository(s.mockCtrl)
	s.mockMembershipRepo = mocks.NewMockMembershipRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.SchemeRepoName)).
		Return(s.mockSchemeRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.MembershipRepoName)).
		Return(s.mockMembershipRepo, nil).AnyTimes()

	s.loc = time.FixedZone("WAT", 3600)
	s.now = time.Date(2026, time.May, 20, 15, 30, 0, 0, s.loc)
	s.admin = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	schemeService, err := NewSchemeService(s.mockUOW, s.loc)
	s.Require().NoError(err)
	schemeService.now = func() time.Time { return s.now }
	s.schemeService = schemeService
}

func (s *SchemeServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *SchemeServiceTestSuite) validArgs() CreateSchemeArgs {
	return CreateSchemeArgs{
		Name:               gofakeit.Company(),
		Description:        gofakeit.Word(),
		Type:               domain.SchemeAkawo,
		ContributionAmount: decimal.NewFromInt(int64(gofakeit.Number(500, 5000))),
		Frequency:          domain.FrequencyDaily,
	}
}

func (s *SchemeServiceTestSuite) TestCreate() {
	args := s.validArgs()
	args.Name = "  " + args.Name + " "
	args.Rules = domain.SchemeRules{FixedServiceCharge: decimal.NewNullDecimal(decimal.NewFromInt(200))}

	created := &domain.Scheme{ID: uuid.New()}
	s.mockSchemeRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a repoargs.CreateScheme) (*domain.Scheme, error) {
			s.Equal(s.admin.UserID, a.AdminID)
			s.Equal(args.Type, a.Type)
			s.NotEqual(args.Name, a.Name)
			s.Equal(time.Date(2026, time.May, 20, 0, 0, 0, 0, s.loc), a.StartDate)
			s.Nil(a.EndDate)
			return created, nil
		})

	scheme, err := s.schemeService.Create(context.Background(), s.admin, args)
	s.Require().NoError(err)
	s.Equal(created, scheme)
}

func (s *SchemeServiceTestSuite) TestCreateAjitaWithEndDate() {
	args := s.validArgs()
	args.Type = domain.SchemeAjita
	end := s.now.AddDate(0, 6, 0)
	args.EndDate = &end

	s.mockSchemeRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.Scheme{ID: uuid.New()}, nil)

	_, err := s.schemeService.Create(context.Background(), s.admin, args)
	s.Require().NoError(err)
}

func (s *SchemeServiceTestSuite) TestCreateValidation() {
	past := s.now.AddDate(0, -1, 0)
	future := s.now.AddDate(0, 1, 0)

	cases := []struct {
		name    string
		modify  func(a *CreateSchemeArgs)
		wantErr error
	}{
		{
			name:    "empty name",
			modify:  func(a *CreateSchemeArgs) { a.Name = "   " },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown type",
			modify:  func(a *CreateSchemeArgs) { a.Type = "esusu" },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown frequency",
			modify:  func(a *CreateSchemeArgs) { a.Frequency = "hourly" },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "zero contribution",
			modify:  func(a *CreateSchemeArgs) { a.ContributionAmount = decimal.Zero },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "end date for akawo",
			modify:  func(a *CreateSchemeArgs) { a.EndDate = &future },
			wantErr: domain.ErrValidation,
		},
		{
			name: "end date before start",
			modify: func(a *CreateSchemeArgs) {
				a.Type = domain.SchemeAjita
				a.EndDate = &past
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown charge strategy",
			modify:  func(a *CreateSchemeArgs) { a.Rules.ChargeStrategy = "flat" },
			wantErr: domain.ErrValidation,
		},
		{
			name: "percent over 100",
			modify: func(a *CreateSchemeArgs) {
				a.Rules.ServiceChargePercent = decimal.NewNullDecimal(decimal.NewFromInt(150))
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "negative fixed charge",
			modify: func(a *CreateSchemeArgs) {
				a.Rules.FixedServiceCharge = decimal.NewNullDecimal(decimal.NewFromInt(-1))
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			args := s.validArgs()
			tc.modify(&args)
			_, err := s.schemeService.Create(context.Background(), s.admin, args)
			s.Require().ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *SchemeServiceTestSuite) TestCreateForbiddenForMember() {
	member := domain.Actor{UserID: uuid.New(), Role: domain.RoleMember}

	_, err := s.schemeService.Create(context.Background(), member, s.validArgs())
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *SchemeServiceTestSuite) TestAssignMembers() {
	schemeID := uuid.New()
	kept, withDeposits, withoutDeposits, added := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.SchemeRepoName)).Return(s.mockSchemeRepo, nil)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.MembershipRepoName)).Return(s.mockMembershipRepo, nil)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).Return(s.mockTransactionRepo, nil)

	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(&domain.Scheme{ID: schemeID}, nil)
	s.mockMembershipRepo.EXPECT().ListBySchemeID(gomock.Any(), schemeID).Return([]repoargs.MemberRow{
		{Membership: domain.Membership{SchemeID: schemeID, UserID: kept}},
		{Membership: domain.Membership{SchemeID: schemeID, UserID: withDeposits}},
		{Membership: domain.Membership{SchemeID: schemeID, UserID: withoutDeposits}},
	}, nil)
	s.mockTransactionRepo.EXPECT().
		UsersWithDeposits(gomock.Any(), schemeID, []uuid.UUID{withDeposits, withoutDeposits}).
		Return([]uuid.UUID{withDeposits}, nil)
	s.mockMembershipRepo.EXPECT().
		Delete(gomock.Any(), schemeID, []uuid.UUID{withoutDeposits}).
		Return(int64(1), nil)
	s.mockMembershipRepo.EXPECT().
		BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, creates []repoargs.CreateMembership, fn repoargs.BatchExecQueryRow) {
			s.Require().Len(creates, 1)
			s.Equal(added, creates[0].UserID)
			s.Equal(s.now, creates[0].JoinedAt)
			fn(0, nil)
		})

	res, err := s.schemeService.AssignMembers(context.Background(), s.admin, schemeID, []uuid.UUID{kept, added, added})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{added}, res.Added)
	s.Equal([]uuid.UUID{withoutDeposits}, res.Removed)
	s.Equal([]uuid.UUID{withDeposits}, res.Kept)
}

func (s *SchemeServiceTestSuite) TestAssignMembersSchemeNotFound() {
	schemeID := uuid.New()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTX.EXPECT().Get(gomock.Any()).DoAndReturn(func(name uow.RepositoryName) (uow.Repository, error) {
		switch name {
		case uow.RepositoryName(repoargs.SchemeRepoName):
			return s.mockSchemeRepo, nil
		case uow.RepositoryName(repoargs.MembershipRepoName):
			return s.mockMembershipRepo, nil
		default:
			return s.mockTransactionRepo, nil
		}
	}).Times(3)
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(nil, domain.ErrRecordNotFound)

	_, err := s.schemeService.AssignMembers(context.Background(), s.admin, schemeID, []uuid.UUID{uuid.New()})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *SchemeServiceTestSuite) TestUpdateMembership() {
	schemeID, userID := uuid.New(), uuid.New()
	status := domain.MembershipDefaulted
	order := int32(3)

	s.mockMembershipRepo.EXPECT().Update(gomock.Any(), repoargs.UpdateMembership{
		SchemeID:    schemeID,
		UserID:      userID,
		Status:      &status,
		PayoutOrder: &order,
	}).Return(&domain.Membership{Status: status, PayoutOrder: &order}, nil)

	m, err := s.schemeService.UpdateMembership(context.Background(), s.admin, UpdateMembershipArgs{
		SchemeID:    schemeID,
		UserID:      userID,
		Status:      &status,
		PayoutOrder: &order,
	})
	s.Require().NoError(err)
	s.Equal(domain.MembershipDefaulted, m.Status)
}

func (s *SchemeServiceTestSuite) TestUpdateMembershipValidation() {
	bad := domain.MembershipStatusType("paused")
	zero := int32(0)

	for name, args := range map[string]UpdateMembershipArgs{
		"nothing to update": {},
		"unknown status":    {Status: &bad},
		"zero order":        {PayoutOrder: &zero},
	} {
		s.Run(name, func() {
			_, err := s.schemeService.UpdateMembership(context.Background(), s.admin, args)
			s.Require().ErrorIs(err, domain.ErrValidation)
		})
	}
}

func (s *SchemeServiceTestSuite) TestMaturedSchemes() {
	schemes := []domain.Scheme{{ID: uuid.New(), Type: domain.SchemeAjita}}
	s.mockSchemeRepo.EXPECT().GetMatured(gomock.Any(), s.now, uint(10)).Return(schemes, nil)
	s.mockMembershipRepo.EXPECT().CompleteActive(gomock.Any(), schemes[0].ID).Return(int64(4), nil)

	matured, err := s.schemeService.MaturedSchemes(context.Background(), 10)
	s.Require().NoError(err)
	s.Require().Len(matured, 1)

	n, err := s.schemeService.CompleteMatured(context.Background(), matured[0].ID)
	s.Require().NoError(err)
	s.Equal(int64(4), n)
}
