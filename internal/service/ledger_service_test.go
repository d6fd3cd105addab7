package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/events"
	"github.com/fsdevblog/adashi/internal/ledger"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service/mocks"
	"github.com/fsdevblog/adashi/pkg/uow"
	uowmocks "github.com/fsdevblog/adashi/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockSchemeRepo      *mocks.MockSchemeRepository
	mockMembershipRepo  *mocks.MockMembershipRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	mockPublisher       *mocks.MockEventPublisher
	ledgerService       *LedgerService

	loc   *time.Location
	now   time.Time
	admin domain.Actor
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockSchemeRepo = mocks.NewMockSchemeRepository(s.mockCtrl)
	s.mockMembershipRepo = mocks.NewMockMembershipRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockPublisher = mocks.NewMockEventPublisher(s.mockCtrl)

	// Мок получения репозиториев из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.SchemeRepoName)).
		Return(s.mockSchemeRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.MembershipRepoName)).
		Return(s.mockMembershipRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.loc = time.FixedZone("WAT", 3600)
	s.now = time.Date(2026, time.March, 10, 12, 0, 0, 0, s.loc)
	s.admin = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}

	ledgerService, err := NewLedgerService(s.mockUOW, s.mockPublisher, s.loc, logger)
	s.Require().NoError(err)
	ledgerService.now = func() time.Time { return s.now }
	s.ledgerService = ledgerService
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectTx настраивает uow.Do и получение репозиториев внутри транзакции.
func (s *LedgerServiceTestSuite) expectTx() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.MembershipRepoName)).
		Return(s.mockMembershipRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()
}

func (s *LedgerServiceTestSuite) membership(schemeID, userID uuid.UUID) *domain.Membership {
	return &domain.Membership{
		ID:       uuid.New(),
		SchemeID: schemeID,
		UserID:   userID,
		Status:   domain.MembershipActive,
		JoinedAt: time.Date(2026, time.January, 1, 9, 0, 0, 0, s.loc),
	}
}

func (s *LedgerServiceTestSuite) tx(tt domain.TransactionType, amount int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:     uuid.New(),
		Amount: decimal.NewFromInt(amount),
		Type:   tt,
		Date:   date,
	}
}

func (s *LedgerServiceTestSuite) TestRecordContribution() {
	schemeID, userID := uuid.New(), uuid.New()
	notes := gofakeit.Word()
	amount := decimal.NewFromInt(int64(gofakeit.Number(100, 5000)))

	s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).
		Return(s.membership(schemeID, userID), nil)

	created := &domain.Transaction{
		ID:        uuid.New(),
		CreatedAt: s.now,
		UserID:    userID,
		SchemeID:  schemeID,
		AdminID:   s.admin.UserID,
		Amount:    amount,
		Type:      domain.TransactionDeposit,
		Date:      s.now,
		Notes:     notes,
	}
	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
			s.Equal(userID, args.UserID)
			s.Equal(schemeID, args.SchemeID)
			s.Equal(s.admin.UserID, args.AdminID)
			s.True(amount.Equal(args.Amount))
			s.Equal(domain.TransactionDeposit, args.Type)
			s.True(s.now.Equal(args.Date))
			s.Equal(notes, args.Notes)
			return created, nil
		})

	s.mockPublisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.LedgerEvent) {
			s.Equal(events.KindContributionRecorded, event.Kind)
			s.Equal([]uuid.UUID{created.ID}, event.TransactionIDs)
		}).
		Return(nil)

	t, err := s.ledgerService.RecordContribution(context.Background(), s.admin, RecordContributionArgs{
		UserID:   userID,
		SchemeID: schemeID,
		Amount:   amount,
		Type:     domain.TransactionDeposit,
		Notes:    "  " + notes + " ",
	})
	s.Require().NoError(err)
	s.Equal(created, t)
}

func (s *LedgerServiceTestSuite) TestRecordContributionPublishFailureIsIgnored() {
	schemeID, userID := uuid.New(), uuid.New()

	s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).
		Return(s.membership(schemeID, userID), nil)
	s.mockTransactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&domain.Transaction{ID: uuid.New(), UserID: userID, SchemeID: schemeID}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker is down"))

	_, err := s.ledgerService.RecordContribution(context.Background(), s.admin, RecordContributionArgs{
		UserID:   userID,
		SchemeID: schemeID,
		Amount:   decimal.NewFromInt(1000),
		Type:     domain.TransactionDeposit,
	})
	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) TestRecordContributionRejected() {
	schemeID, userID := uuid.New(), uuid.New()
	before := time.Date(2025, time.December, 31, 10, 0, 0, 0, s.loc)

	cases := []struct {
		name    string
		actor   domain.Actor
		args    RecordContributionArgs
		find    bool
		wantErr error
	}{
		{
			name:    "member is not allowed",
			actor:   domain.Actor{UserID: userID, Role: domain.RoleMember},
			args:    RecordContributionArgs{Amount: decimal.NewFromInt(100), Type: domain.TransactionDeposit},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "anonymous",
			actor:   domain.Actor{},
			args:    RecordContributionArgs{Amount: decimal.NewFromInt(100), Type: domain.TransactionDeposit},
			wantErr: domain.ErrUnauthenticated,
		},
		{
			name:    "zero amount",
			actor:   s.admin,
			args:    RecordContributionArgs{Amount: decimal.Zero, Type: domain.TransactionDeposit},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			actor:   s.admin,
			args:    RecordContributionArgs{Amount: decimal.NewFromInt(-5), Type: domain.TransactionDeposit},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount finer than kobo",
			actor:   s.admin,
			args:    RecordContributionArgs{Amount: decimal.RequireFromString("10.005"), Type: domain.TransactionDeposit},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			actor:   s.admin,
			args:    RecordContributionArgs{Amount: decimal.NewFromInt(100), Type: "bonus"},
			wantErr: domain.ErrValidation,
		},
		{
			name:  "date before joining",
			actor: s.admin,
			args: RecordContributionArgs{
				UserID:   userID,
				SchemeID: schemeID,
				Amount:   decimal.NewFromInt(100),
				Type:     domain.TransactionDeposit,
				Date:     &before,
			},
			find:    true,
			wantErr: domain.ErrValidation,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			if tc.find {
				s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).
					Return(s.membership(schemeID, userID), nil)
			}
			_, err := s.ledgerService.RecordContribution(context.Background(), tc.actor, tc.args)
			s.Require().ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *LedgerServiceTestSuite) TestMemberBalance() {
	schemeID, userID := uuid.New(), uuid.New()
	member := domain.Actor{UserID: userID, Role: domain.RoleMember}
	m := s.membership(schemeID, userID)
	day := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

	s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return([]domain.Transaction{
			s.tx(domain.TransactionDeposit, 1000, day),
			s.tx(domain.TransactionDeposit, 2000, day.AddDate(0, 0, 1)),
			s.tx(domain.TransactionWithdrawal, 500, day.AddDate(0, 0, 2)),
			s.tx(domain.TransactionFee, 100, day.AddDate(0, 0, 2)),
		}, nil)

	balance, err := s.ledgerService.MemberBalance(context.Background(), member, schemeID, userID)
	s.Require().NoError(err)
	s.Equal("2400", balance.Balance.String())
	s.Equal("3000", balance.TotalDeposits.String())
	s.Equal("500", balance.TotalWithdrawals.String())
	s.Equal("100", balance.TotalFees.String())
}

func (s *LedgerServiceTestSuite) TestMemberBalanceOfAnotherMember() {
	member := domain.Actor{UserID: uuid.New(), Role: domain.RoleMember}

	_, err := s.ledgerService.MemberBalance(context.Background(), member, uuid.New(), uuid.New())
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestCalculatePayoutMonthBucket() {
	schemeID, userID := uuid.New(), uuid.New()
	m := s.membership(schemeID, userID)
	scheme := &domain.Scheme{ID: schemeID, Name: gofakeit.Company(), Type: domain.SchemeAkawo}

	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(scheme, nil)
	s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return([]domain.Transaction{
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.January, 3, 10, 0, 0, 0, s.loc)),
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.January, 4, 10, 0, 0, 0, s.loc)),
			s.tx(domain.TransactionDeposit, 1500, time.Date(2026, time.February, 1, 10, 0, 0, 0, s.loc)),
		}, nil)

	quote, err := s.ledgerService.CalculatePayout(context.Background(), s.admin, schemeID, userID)
	s.Require().NoError(err)
	s.Equal(ledger.MonthBucketFirstDeposit, quote.Payout.Strategy)
	s.Equal("3500", quote.Payout.GrossAmount.String())
	s.Equal("2500", quote.Payout.ServiceCharge.String())
	s.Equal("1000", quote.Payout.NetPayout.String())
	s.False(quote.Locked)
}

// percentScheme схема с комиссией 10% от депозитов.
func (s *LedgerServiceTestSuite) percentScheme(schemeID uuid.UUID) *domain.Scheme {
	return &domain.Scheme{
		ID:   schemeID,
		Name: gofakeit.Company(),
		Type: domain.SchemeKwanta,
		Rules: domain.SchemeRules{
			ServiceChargePercent: decimal.NewNullDecimal(decimal.NewFromInt(10)),
		},
	}
}

func (s *LedgerServiceTestSuite) expectPayoutLoad(schemeID, userID uuid.UUID) {
	m := s.membership(schemeID, userID)
	day := time.Date(2026, time.February, 1, 10, 0, 0, 0, s.loc)

	s.mockMembershipRepo.EXPECT().FindForUpdate(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return([]domain.Transaction{
			s.tx(domain.TransactionDeposit, 1000, day),
			s.tx(domain.TransactionDeposit, 500, day.AddDate(0, 0, 1)),
		}, nil)
}

// echoBatch имитирует batch вставку: каждая запись возвращается с новым ID.
func echoBatch(
	_ context.Context,
	creates []repoargs.CreateTransaction,
	fn repoargs.TransactionBatchQueryRow,
) {
	for i, c := range creates {
		fn(i, &domain.Transaction{
			ID:       uuid.New(),
			UserID:   c.UserID,
			SchemeID: c.SchemeID,
			AdminID:  c.AdminID,
			Amount:   c.Amount,
			Type:     c.Type,
			Date:     c.Date,
			Notes:    c.Notes,
		}, nil)
	}
}

func (s *LedgerServiceTestSuite) TestProcessPayoutNet() {
	schemeID, userID := uuid.New(), uuid.New()
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(s.percentScheme(schemeID), nil)
	s.expectTx()
	s.expectPayoutLoad(schemeID, userID)

	s.mockTransactionRepo.EXPECT().
		BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, creates []repoargs.CreateTransaction, _ repoargs.TransactionBatchQueryRow) {
			s.Require().Len(creates, 2)
			s.Equal(domain.TransactionWithdrawal, creates[0].Type)
			s.Equal("1350", creates[0].Amount.String())
			s.Equal(domain.TransactionFee, creates[1].Type)
			s.Equal("150", creates[1].Amount.String())
		}).
		DoAndReturn(echoBatch)

	s.mockPublisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event events.LedgerEvent) {
			s.Equal(events.KindPayoutProcessed, event.Kind)
			s.Len(event.TransactionIDs, 2)
			s.Equal("1350", event.Amount.String())
			s.Equal("150", event.ServiceCharge.String())
		}).
		Return(nil)

	res, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   userID,
		SchemeID: schemeID,
	})
	s.Require().NoError(err)
	s.Equal(PayoutNet, res.Mode)
	s.Equal(ledger.PercentOfBalance, res.Payout.Strategy)
	s.Equal("1350", res.Withdrawal.Amount.String())
	s.Require().NotNil(res.Fee)
	s.Equal("150", res.Fee.Amount.String())
}

func (s *LedgerServiceTestSuite) TestProcessPayoutGross() {
	schemeID, userID := uuid.New(), uuid.New()
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(s.percentScheme(schemeID), nil)
	s.expectTx()
	s.expectPayoutLoad(schemeID, userID)

	s.mockTransactionRepo.EXPECT().
		BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, creates []repoargs.CreateTransaction, _ repoargs.TransactionBatchQueryRow) {
			s.Require().Len(creates, 1)
			s.Equal("1500", creates[0].Amount.String())
		}).
		DoAndReturn(echoBatch)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   userID,
		SchemeID: schemeID,
		Mode:     PayoutGross,
	})
	s.Require().NoError(err)
	s.Nil(res.Fee)
	s.Equal("1500", res.Withdrawal.Amount.String())
}

func (s *LedgerServiceTestSuite) TestProcessPayoutCustomOutOfRange() {
	schemeID, userID := uuid.New(), uuid.New()
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(s.percentScheme(schemeID), nil)
	s.expectTx()
	s.expectPayoutLoad(schemeID, userID)

	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:       userID,
		SchemeID:     schemeID,
		Mode:         PayoutCustom,
		CustomAmount: decimal.NewFromInt(1501),
	})
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)

	var rangeErr *domain.PayoutRangeError
	s.Require().ErrorAs(err, &rangeErr)
	s.Equal("1500", rangeErr.Max.String())
}

func (s *LedgerServiceTestSuite) TestProcessPayoutNothingToPayOut() {
	schemeID, userID := uuid.New(), uuid.New()
	m := s.membership(schemeID, userID)
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(s.percentScheme(schemeID), nil)
	s.expectTx()
	s.mockMembershipRepo.EXPECT().FindForUpdate(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return([]domain.Transaction{}, nil)

	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   userID,
		SchemeID: schemeID,
	})
	s.Require().ErrorIs(err, domain.ErrNothingToPayOut)
}

// expectSettledMember участник month bucket схемы: 5x1000 в январе, 3x1000 в феврале, после чего в марте
// прошли списания debits.
func (s *LedgerServiceTestSuite) expectSettledMember(schemeID, userID uuid.UUID, debits ...domain.Transaction) {
	m := s.membership(schemeID, userID)

	var transactions []domain.Transaction
	for i := 1; i <= 5; i++ {
		transactions = append(transactions,
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.January, i, 10, 0, 0, 0, s.loc)))
	}
	for i := 1; i <= 3; i++ {
		transactions = append(transactions,
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.February, i, 10, 0, 0, 0, s.loc)))
	}
	transactions = append(transactions, debits...)

	s.mockMembershipRepo.EXPECT().FindForUpdate(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return(transactions, nil)
}

func (s *LedgerServiceTestSuite) TestProcessPayoutTwice() {
	schemeID, userID := uuid.New(), uuid.New()
	scheme := &domain.Scheme{ID: schemeID, Name: gofakeit.Company(), Type: domain.SchemeAkawo}
	paidAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, s.loc)

	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(scheme, nil)
	s.expectTx()
	// первая выплата уже списала весь баланс: 6000 к выдаче + 2000 комиссии.
	s.expectSettledMember(schemeID, userID,
		s.tx(domain.TransactionWithdrawal, 6000, paidAt),
		s.tx(domain.TransactionFee, 2000, paidAt),
	)

	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   userID,
		SchemeID: schemeID,
		Mode:     PayoutNet,
	})
	s.Require().ErrorIs(err, domain.ErrNothingToPayOut)
}

func (s *LedgerServiceTestSuite) TestProcessPayoutExceedsBalance() {
	cases := []struct {
		name   string
		mode   PayoutMode
		custom decimal.Decimal
		want   string
	}{
		{name: "net", mode: PayoutNet, want: "8000"},
		{name: "gross", mode: PayoutGross, want: "8000"},
		{name: "custom", mode: PayoutCustom, custom: decimal.NewFromInt(7500), want: "7500"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			schemeID, userID := uuid.New(), uuid.New()
			scheme := &domain.Scheme{ID: schemeID, Name: gofakeit.Company(), Type: domain.SchemeAkawo}

			s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(scheme, nil)
			s.expectTx()
			// gross по депозитам 8000, но 1000 уже выдано вручную, баланс 7000.
			s.expectSettledMember(schemeID, userID,
				s.tx(domain.TransactionWithdrawal, 1000, time.Date(2026, time.March, 1, 10, 0, 0, 0, s.loc)))

			_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
				UserID:       userID,
				SchemeID:     schemeID,
				Mode:         tc.mode,
				CustomAmount: tc.custom,
			})
			s.Require().ErrorIs(err, domain.ErrInvalidAmount)

			var rangeErr *domain.PayoutRangeError
			s.Require().ErrorAs(err, &rangeErr)
			s.Equal(tc.want, rangeErr.Amount.String())
			s.Equal("7000", rangeErr.Max.String())
		})
	}
}

func (s *LedgerServiceTestSuite) TestProcessPayoutCustomFinerThanKobo() {
	schemeID, userID := uuid.New(), uuid.New()
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(s.percentScheme(schemeID), nil)
	s.expectTx()
	s.expectPayoutLoad(schemeID, userID)

	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:       userID,
		SchemeID:     schemeID,
		Mode:         PayoutCustom,
		CustomAmount: decimal.RequireFromString("100.005"),
	})
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestProcessPayoutLocked() {
	schemeID := uuid.New()
	end := s.now.AddDate(0, 1, 0)
	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(&domain.Scheme{
		ID:      schemeID,
		Type:    domain.SchemeAjita,
		EndDate: &end,
	}, nil)

	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   uuid.New(),
		SchemeID: schemeID,
	})
	s.Require().ErrorIs(err, domain.ErrFundsLocked)
}

func (s *LedgerServiceTestSuite) TestProcessPayoutUnknownMode() {
	_, err := s.ledgerService.ProcessPayout(context.Background(), s.admin, ProcessPayoutArgs{
		UserID:   uuid.New(),
		SchemeID: uuid.New(),
		Mode:     "all",
	})
	s.Require().ErrorIs(err, domain.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestHasContributedToday() {
	schemeID, userID := uuid.New(), uuid.New()
	from := time.Date(2026, time.March, 10, 0, 0, 0, 0, s.loc)

	s.mockTransactionRepo.EXPECT().
		CountDeposits(gomock.Any(), schemeID, userID, from, from.AddDate(0, 0, 1)).
		Return(int64(2), nil)

	ok, err := s.ledgerService.HasContributedToday(context.Background(), s.admin, schemeID, userID)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *LedgerServiceTestSuite) TestTransactionsPaging() {
	s.mockTransactionRepo.EXPECT().
		List(gomock.Any(), repoargs.TransactionFilter{
			Type:   domain.TransactionFee,
			Search: "ada",
			Limit:  MaxPageSize,
			Offset: MaxPageSize,
		}).
		Return([]repoargs.TransactionRow{}, int64(250), nil)
	s.mockTransactionRepo.EXPECT().Totals(gomock.Any()).Return(&repoargs.TransactionTotals{
		Deposits:    decimal.NewFromInt(10000),
		Withdrawals: decimal.NewFromInt(2000),
		Fees:        decimal.NewFromInt(300),
	}, nil)

	page, err := s.ledgerService.Transactions(context.Background(), s.admin, TransactionsQuery{
		Type:     domain.TransactionFee,
		Search:   "ada",
		Page:     2,
		PageSize: 1000,
	})
	s.Require().NoError(err)
	s.Equal(2, page.Page)
	s.Equal(MaxPageSize, page.PageSize)
	s.Equal(3, page.TotalPages)
	s.Equal(int64(250), page.Total)
	s.Equal("10000", page.Totals.Deposits.String())
}

func (s *LedgerServiceTestSuite) TestTransactionsDefaults() {
	s.mockTransactionRepo.EXPECT().
		List(gomock.Any(), repoargs.TransactionFilter{Limit: DefaultPageSize}).
		Return(nil, int64(0), nil)
	s.mockTransactionRepo.EXPECT().Totals(gomock.Any()).Return(&repoargs.TransactionTotals{}, nil)

	page, err := s.ledgerService.Transactions(context.Background(), s.admin, TransactionsQuery{})
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(DefaultPageSize, page.PageSize)
	s.Equal(0, page.TotalPages)
}

func (s *LedgerServiceTestSuite) TestPassbook() {
	schemeID, userID := uuid.New(), uuid.New()
	member := domain.Actor{UserID: userID, Role: domain.RoleMember}
	m := s.membership(schemeID, userID)

	s.mockSchemeRepo.EXPECT().FindByID(gomock.Any(), schemeID).Return(&domain.Scheme{
		ID:                 schemeID,
		Type:               domain.SchemeAkawo,
		ContributionAmount: decimal.NewFromInt(1000),
	}, nil)
	s.mockMembershipRepo.EXPECT().Find(gomock.Any(), schemeID, userID).Return(m, nil)
	s.mockTransactionRepo.EXPECT().GetByMember(gomock.Any(), schemeID, userID, m.JoinedAt).
		Return([]domain.Transaction{
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)),
			s.tx(domain.TransactionDeposit, 1000, time.Date(2026, time.February, 2, 8, 0, 0, 0, time.UTC)),
		}, nil)

	passbook, err := s.ledgerService.Passbook(context.Background(), member, schemeID, userID, 2)
	s.Require().NoError(err)
	s.Require().Len(passbook.Months, 2)
	s.Equal(time.January, passbook.Months[0].Start.Month())
	s.Equal(1, passbook.Months[0].Contributions)
	s.Equal("2000", passbook.Balance.Balance.String())
}
