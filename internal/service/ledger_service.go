package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fsdevblog/adashi/internal/calendar"
	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/events"
	"github.com/fsdevblog/adashi/internal/ledger"
	"github.com/fsdevblog/adashi/internal/logger"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize     = 10
	MaxPageSize         = 100
	memberHistoryLimit  = 500
	publishEventTimeout = 5 * time.Second
)

type PayoutMode string

const (
	// PayoutNet выплата net, комиссия списывается отдельной fee транзакцией.
	PayoutNet PayoutMode = "net"
	// PayoutGross выплата всей суммы gross без комиссии.
	PayoutGross PayoutMode = "gross"
	// PayoutCustom произвольная сумма в диапазоне (0, gross] без комиссии.
	PayoutCustom PayoutMode = "custom"
)

func (m PayoutMode) Valid() bool {
	switch m {
	case PayoutNet, PayoutGross, PayoutCustom:
		return true
	}
	return false
}

type LedgerService struct {
	uow             uow.UOW
	schemeRepo      SchemeRepository
	membershipRepo  MembershipRepository
	transactionRepo TransactionRepository
	publisher       EventPublisher
	loc             *time.Location
	now             func() time.Time
	l               *logrus.Entry
}

func NewLedgerService(
	u uow.UOW,
	publisher EventPublisher,
	loc *time.Location,
	l *logrus.Logger,
) (*LedgerService, error) {
	schemeRepo, err := uow.GetRepositoryAs[SchemeRepository](u, uow.RepositoryName(repoargs.SchemeRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	membershipRepo, err := uow.GetRepositoryAs[MembershipRepository](u, uow.RepositoryName(repoargs.MembershipRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	transactionRepo, err := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &LedgerService{
		uow:             u,
		schemeRepo:      schemeRepo,
		membershipRepo:  membershipRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		loc:             loc,
		now:             time.Now,
		l:               logger.Component(l, "ledger_service"),
	}, nil
}

type RecordContributionArgs struct {
	UserID   uuid.UUID
	SchemeID uuid.UUID
	Amount   decimal.Decimal
	Type     domain.TransactionType
	// Date nil означает "сейчас". Задним числом можно, но не раньше вступления участника в схему.
	Date  *time.Time
	Notes string
}

// RecordContribution добавляет одну транзакцию в журнал участника. Доступно только админу. Несколько взносов
// в один день разрешены, календарь показывает их как излишек.
func (s *LedgerService) RecordContribution(
	ctx context.Context,
	actor domain.Actor,
	args RecordContributionArgs,
) (*domain.Transaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("recording contribution: %w", err)
	}
	if !args.Amount.IsPositive() {
		return nil, fmt.Errorf("recording contribution: %w: amount must be positive", domain.ErrInvalidAmount)
	}
	if !ledger.IsMoneyScale(args.Amount) {
		return nil, fmt.Errorf("recording contribution: %w: amount %s has more than %d decimal places",
			domain.ErrInvalidAmount, args.Amount.String(), ledger.MoneyScale)
	}
	if !args.Type.Valid() {
		return nil, fmt.Errorf("recording contribution: %w",
			domain.NewValidationError("unknown transaction type `%s`", args.Type))
	}

	membership, err := s.membershipRepo.Find(ctx, args.SchemeID, args.UserID)
	if err != nil {
		return nil, fmt.Errorf("recording contribution: %w", err)
	}

	date := s.now()
	if args.Date != nil {
		date = *args.Date
	}
	if date.Before(membership.JoinedAt) {
		return nil, fmt.Errorf("recording contribution: %w", domain.NewValidationError(
			"date %s is before member joined the scheme", date.In(s.loc).Format(time.DateOnly)))
	}

	t, err := s.transactionRepo.Create(ctx, repoargs.CreateTransaction{
		UserID:   args.UserID,
		SchemeID: args.SchemeID,
		AdminID:  actor.UserID,
		Amount:   args.Amount,
		Type:     args.Type,
		Date:     date,
		Notes:    strings.TrimSpace(args.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("recording contribution: %w", err)
	}

	s.publish(ctx, events.LedgerEvent{
		Kind:           events.KindContributionRecorded,
		TransactionIDs: []uuid.UUID{t.ID},
		UserID:         t.UserID,
		SchemeID:       t.SchemeID,
		AdminID:        t.AdminID,
		Amount:         t.Amount,
		OccurredAt:     t.CreatedAt,
	})
	return t, nil
}

// MemberBalance баланс участника по транзакциям начиная с даты вступления.
func (s *LedgerService) MemberBalance(
	ctx context.Context,
	actor domain.Actor,
	schemeID, userID uuid.UUID,
) (*ledger.Balance, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, fmt.Errorf("member balance: %w", err)
	}
	_, transactions, err := s.memberTransactions(ctx, s.membershipRepo, s.transactionRepo, schemeID, userID, false)
	if err != nil {
		return nil, fmt.Errorf("member balance: %w", err)
	}
	balance := ledger.ComputeBalance(transactions)
	return &balance, nil
}

type PayoutQuote struct {
	Scheme  domain.Scheme
	Balance ledger.Balance
	Payout  ledger.Payout
	// Locked средства ajita схемы заблокированы до Scheme.EndDate.
	Locked bool
}

// CalculatePayout предварительный расчет выплаты без записи в журнал.
func (s *LedgerService) CalculatePayout(
	ctx context.Context,
	actor domain.Actor,
	schemeID, userID uuid.UUID,
) (*PayoutQuote, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("calculating payout: %w", err)
	}
	scheme, err := s.schemeRepo.FindByID(ctx, schemeID)
	if err != nil {
		return nil, fmt.Errorf("calculating payout: %w", err)
	}
	_, transactions, err := s.memberTransactions(ctx, s.membershipRepo, s.transactionRepo, schemeID, userID, false)
	if err != nil {
		return nil, fmt.Errorf("calculating payout: %w", err)
	}

	payout, err := ledger.ComputePayout(transactions, scheme.Rules)
	if err != nil {
		return nil, fmt.Errorf("calculating payout: %w", err)
	}
	return &PayoutQuote{
		Scheme:  *scheme,
		Balance: ledger.ComputeBalance(transactions),
		Payout:  payout,
		Locked:  scheme.LockedAt(s.now()),
	}, nil
}

type ProcessPayoutArgs struct {
	UserID       uuid.UUID
	SchemeID     uuid.UUID
	Mode         PayoutMode
	CustomAmount decimal.Decimal
	Notes        string
}

type PayoutResult struct {
	Payout     ledger.Payout
	Mode       PayoutMode
	Withdrawal domain.Transaction
	// Fee nil, если комиссия не списывалась.
	Fee *domain.Transaction
}

// ProcessPayout проводит выплату участнику.
//
// Алгоритм работы:
//  1. Проверяет права, режим и блокировку средств ajita схемы (domain.ErrFundsLocked).
//  2. Внутри транзакции блокирует строку участия (FOR UPDATE), поэтому параллельные выплаты одному участнику
//     выполняются последовательно.
//  3. Считает выплату и текущий баланс. Если баланс или net <= 0, возвращает domain.ErrNothingToPayOut.
//     Стратегия month_bucket_first_deposit считает gross по всем депозитам и не учитывает прошлые списания,
//     поэтому отдельно проверяется, что withdrawal + fee не больше баланса (иначе domain.PayoutRangeError).
//  4. Одним батчем пишет withdrawal и, для режима net с положительной комиссией, fee.
//  5. После фиксации публикует payout.processed.
func (s *LedgerService) ProcessPayout(
	ctx context.Context,
	actor domain.Actor,
	args ProcessPayoutArgs,
) (*PayoutResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("processing payout: %w", err)
	}
	if args.Mode == "" {
		args.Mode = PayoutNet
	}
	if !args.Mode.Valid() {
		return nil, fmt.Errorf("processing payout: %w",
			domain.NewValidationError("unknown payout mode `%s`", args.Mode))
	}

	scheme, err := s.schemeRepo.FindByID(ctx, args.SchemeID)
	if err != nil {
		return nil, fmt.Errorf("processing payout: %w", err)
	}
	now := s.now()
	if scheme.LockedAt(now) {
		return nil, fmt.Errorf("processing payout: %w (unlocks %s)",
			domain.ErrFundsLocked, scheme.EndDate.In(s.loc).Format(time.DateOnly))
	}

	var result *PayoutResult
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		membershipRepo, repoErr := uow.GetAs[MembershipRepository](tx, uow.RepositoryName(repoargs.MembershipRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		transactionRepo, repoErr := uow.GetAs[TransactionRepository](
			tx, uow.RepositoryName(repoargs.TransactionRepoName),
		)
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		_, transactions, loadErr := s.memberTransactions(c, membershipRepo, transactionRepo,
			args.SchemeID, args.UserID, true)
		if loadErr != nil {
			return loadErr
		}

		payout, payoutErr := ledger.ComputePayout(transactions, scheme.Rules)
		if payoutErr != nil {
			return payoutErr //nolint:wrapcheck
		}
		balance := ledger.ComputeBalance(transactions).Balance
		if !balance.IsPositive() || !payout.NetPayout.IsPositive() {
			return domain.ErrNothingToPayOut
		}

		creates, planErr := s.planPayout(actor, scheme, args, payout, balance, now)
		if planErr != nil {
			return planErr
		}

		created, createErr := batchCreateTransactions(c, transactionRepo, creates)
		if createErr != nil {
			return createErr
		}

		result = &PayoutResult{
			Payout:     payout,
			Mode:       args.Mode,
			Withdrawal: created[0],
		}
		if len(created) > 1 {
			result.Fee = &created[1]
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("processing payout: %w", txErr)
	}

	ids := []uuid.UUID{result.Withdrawal.ID}
	charge := decimal.Zero
	if result.Fee != nil {
		ids = append(ids, result.Fee.ID)
		charge = result.Fee.Amount
	}
	s.publish(ctx, events.LedgerEvent{
		Kind:           events.KindPayoutProcessed,
		TransactionIDs: ids,
		UserID:         args.UserID,
		SchemeID:       args.SchemeID,
		AdminID:        actor.UserID,
		Amount:         result.Withdrawal.Amount,
		ServiceCharge:  charge,
		OccurredAt:     now,
	})
	return result, nil
}

// planPayout формирует транзакции выплаты: withdrawal всегда первый, fee (если есть) второй. Сумма всех
// списаний не может превышать текущий баланс участника.
func (s *LedgerService) planPayout(
	actor domain.Actor,
	scheme *domain.Scheme,
	args ProcessPayoutArgs,
	payout ledger.Payout,
	balance decimal.Decimal,
	now time.Time,
) ([]repoargs.CreateTransaction, error) {
	withdrawal := repoargs.CreateTransaction{
		UserID:   args.UserID,
		SchemeID: args.SchemeID,
		AdminID:  actor.UserID,
		Type:     domain.TransactionWithdrawal,
		Date:     now,
		Notes:    strings.TrimSpace(args.Notes),
	}

	switch args.Mode {
	case PayoutGross:
		withdrawal.Amount = payout.GrossAmount
	case PayoutCustom:
		limit := decimal.Min(payout.GrossAmount, balance)
		if !args.CustomAmount.IsPositive() || args.CustomAmount.GreaterThan(limit) ||
			!ledger.IsMoneyScale(args.CustomAmount) {
			return nil, domain.NewPayoutRangeError(args.CustomAmount, limit)
		}
		withdrawal.Amount = args.CustomAmount
	default:
		withdrawal.Amount = payout.NetPayout
	}
	if withdrawal.Notes == "" {
		withdrawal.Notes = fmt.Sprintf("Payout (%s) from %s", args.Mode, scheme.Name)
	}

	creates := []repoargs.CreateTransaction{withdrawal}
	if args.Mode == PayoutNet && payout.ServiceCharge.IsPositive() {
		creates = append(creates, repoargs.CreateTransaction{
			UserID:   args.UserID,
			SchemeID: args.SchemeID,
			AdminID:  actor.UserID,
			Amount:   payout.ServiceCharge,
			Type:     domain.TransactionFee,
			Date:     now,
			Notes:    fmt.Sprintf("Service charge (%s)", payout.Strategy),
		})
	}

	debit := decimal.Zero
	for _, c := range creates {
		debit = debit.Add(c.Amount)
	}
	if debit.GreaterThan(balance) {
		return nil, domain.NewPayoutRangeError(debit, balance)
	}
	return creates, nil
}

// HasContributedToday был ли у участника депозит за текущие сутки.
func (s *LedgerService) HasContributedToday(
	ctx context.Context,
	actor domain.Actor,
	schemeID, userID uuid.UUID,
) (bool, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return false, fmt.Errorf("checking today contribution: %w", err)
	}
	start := calendar.StartOfDay(s.now(), s.loc)
	count, err := s.transactionRepo.CountDeposits(ctx, schemeID, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return false, fmt.Errorf("checking today contribution: %w", err)
	}
	return count > 0, nil
}

type MemberPassbook struct {
	Membership domain.Membership
	Scheme     domain.Scheme
	Balance    ledger.Balance
	calendar.Passbook
}

// Passbook сетка взносов участника за months месяцев начиная с месяца вступления.
func (s *LedgerService) Passbook(
	ctx context.Context,
	actor domain.Actor,
	schemeID, userID uuid.UUID,
	months int,
) (*MemberPassbook, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, fmt.Errorf("building passbook: %w", err)
	}
	scheme, err := s.schemeRepo.FindByID(ctx, schemeID)
	if err != nil {
		return nil, fmt.Errorf("building passbook: %w", err)
	}
	membership, transactions, err := s.memberTransactions(ctx, s.membershipRepo, s.transactionRepo,
		schemeID, userID, false)
	if err != nil {
		return nil, fmt.Errorf("building passbook: %w", err)
	}

	start := calendar.StartOfDay(membership.JoinedAt, s.loc)
	projector := calendar.NewProjector(start, s.now(), transactions)

	return &MemberPassbook{
		Membership: *membership,
		Scheme:     *scheme,
		Balance:    ledger.ComputeBalance(transactions),
		Passbook:   projector.Passbook(months, transactions),
	}, nil
}

type TransactionsQuery struct {
	Type     domain.TransactionType
	Search   string
	Page     int
	PageSize int
}

type TransactionPage struct {
	Items      []repoargs.TransactionRow
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	Totals     repoargs.TransactionTotals
}

// Transactions страница журнала для админа. Totals считаются по всему журналу без учета фильтра.
func (s *LedgerService) Transactions(
	ctx context.Context,
	actor domain.Actor,
	query TransactionsQuery,
) (*TransactionPage, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	if query.Type != "" && !query.Type.Valid() {
		return nil, fmt.Errorf("listing transactions: %w",
			domain.NewValidationError("unknown transaction type `%s`", query.Type))
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = DefaultPageSize
	}
	query.PageSize = min(query.PageSize, MaxPageSize)

	items, total, err := s.transactionRepo.List(ctx, repoargs.TransactionFilter{
		Type:   query.Type,
		Search: query.Search,
		Limit:  query.PageSize,
		Offset: (query.Page - 1) * query.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	totals, err := s.transactionRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &TransactionPage{
		Items:      items,
		Page:       query.Page,
		PageSize:   query.PageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(query.PageSize))),
		Totals:     *totals,
	}, nil
}

// MemberHistory последние транзакции участника по всем схемам, новые первыми.
func (s *LedgerService) MemberHistory(
	ctx context.Context,
	actor domain.Actor,
	userID uuid.UUID,
) ([]repoargs.TransactionRow, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, fmt.Errorf("member history: %w", err)
	}
	items, _, err := s.transactionRepo.List(ctx, repoargs.TransactionFilter{
		UserID: userID,
		Limit:  memberHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("member history: %w", err)
	}
	return items, nil
}

// memberTransactions загружает участие и транзакции с момента вступления. Даты переводятся в часовой пояс
// сервиса: от него зависят календарные дни и месяцы. lock блокирует строку участия до конца транзакции.
func (s *LedgerService) memberTransactions(
	ctx context.Context,
	membershipRepo MembershipRepository,
	transactionRepo TransactionRepository,
	schemeID, userID uuid.UUID,
	lock bool,
) (*domain.Membership, []domain.Transaction, error) {
	find := membershipRepo.Find
	if lock {
		find = membershipRepo.FindForUpdate
	}
	membership, err := find(ctx, schemeID, userID)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	transactions, err := transactionRepo.GetByMember(ctx, schemeID, userID, membership.JoinedAt)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	for i := range transactions {
		transactions[i].Date = transactions[i].Date.In(s.loc)
	}
	return membership, transactions, nil
}

// publish отправляет событие. Ошибка брокера не отменяет уже зафиксированную операцию, только логируется.
func (s *LedgerService) publish(ctx context.Context, event events.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishEventTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.l.WithError(err).WithFields(logrus.Fields{
			"kind":     event.Kind,
			"userID":   event.UserID,
			"schemeID": event.SchemeID,
		}).Warn("publish ledger event")
	}
}

// batchCreateTransactions пишет транзакции батчем и возвращает созданные записи в исходном порядке.
// Если в батче несколько ошибок, возвращается последняя.
func batchCreateTransactions(
	ctx context.Context,
	repo TransactionRepository,
	creates []repoargs.CreateTransaction,
) ([]domain.Transaction, error) {
	created := make([]domain.Transaction, len(creates))
	var batchErr error
	repo.BatchCreate(ctx, creates, func(i int, t *domain.Transaction, err error) {
		if err != nil {
			batchErr = err
			return
		}
		created[i] = *t
	})
	if batchErr != nil {
		return nil, batchErr
	}
	if len(created) == 0 {
		return nil, errors.New("no transactions created")
	}
	return created, nil
}
