package pgrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `t.id, t.created_at, t.user_id, t.scheme_id, t.admin_id, t.amount, t.type, t.date, t.notes`

const insertTransactionSQL = `
	INSERT INTO transactions AS t (user_id, scheme_id, admin_id, amount, type, date, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + transactionColumns

// TransactionRepository журнал транзакций. Методов изменения и удаления нет: журнал только дописывается.
type TransactionRepository struct {
	conn DBTX
}

func NewTransactionRepository(conn DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	row := r.conn.QueryRow(ctx, insertTransactionSQL, insertTransactionArgs(args)...)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for user %s", args.Type, args.UserID)
	}
	return t, nil
}

// BatchCreate создает транзакции одним батчем. Внутри uow.Do все записи фиксируются или откатываются
// вместе.
func (r *TransactionRepository) BatchCreate(
	ctx context.Context,
	transactions []repoargs.CreateTransaction,
	fn repoargs.TransactionBatchQueryRow,
) {
	if len(transactions) == 0 {
		return
	}
	batch := new(pgx.Batch)
	for _, args := range transactions {
		batch.Queue(insertTransactionSQL, insertTransactionArgs(args)...)
	}

	br := r.conn.SendBatch(ctx, batch)
	defer br.Close()

	for i, args := range transactions {
		t, err := scanTransaction(br.QueryRow())
		fn(i, t, convertErr(err, "creating %s transaction for user %s", args.Type, args.UserID))
	}
}

// GetByMember транзакции участника в схеме с датой не раньше since, по возрастанию даты.
func (r *TransactionRepository) GetByMember(
	ctx context.Context,
	schemeID, userID uuid.UUID,
	since time.Time,
) ([]domain.Transaction, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		WHERE t.scheme_id = $1 AND t.user_id = $2 AND t.date >= $3
		ORDER BY t.date, t.created_at`,
		schemeID, userID, since,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions of user %s in scheme %s", userID, schemeID)
	}
	transactions, collectErr := pgx.CollectRows(rows, collectTransaction)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting transactions of user %s in scheme %s", userID, schemeID)
	}
	return transactions, nil
}

// CountDeposits количество депозитов участника в интервале [from, to).
func (r *TransactionRepository) CountDeposits(
	ctx context.Context,
	schemeID, userID uuid.UUID,
	from, to time.Time,
) (int64, error) {
	var count int64
	err := r.conn.QueryRow(ctx, `
		SELECT count(*)
		FROM transactions
		WHERE scheme_id = $1 AND user_id = $2 AND type = $3 AND date >= $4 AND date < $5`,
		schemeID, userID, domain.TransactionDeposit, from, to,
	).Scan(&count)
	if err != nil {
		return 0, convertErr(err, "counting deposits of user %s in scheme %s", userID, schemeID)
	}
	return count, nil
}

// UsersWithDeposits возвращает тех из userIDs, у кого есть хотя бы один депозит в схеме.
func (r *TransactionRepository) UsersWithDeposits(
	ctx context.Context,
	schemeID uuid.UUID,
	userIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.conn.Query(ctx, `
		SELECT DISTINCT user_id
		FROM transactions
		WHERE scheme_id = $1 AND type = $2 AND user_id = ANY($3)`,
		schemeID, domain.TransactionDeposit, userIDs,
	)
	if err != nil {
		return nil, convertErr(err, "finding depositors of scheme %s", schemeID)
	}
	ids, collectErr := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if collectErr != nil {
		return nil, convertErr(collectErr, "finding depositors of scheme %s", schemeID)
	}
	return ids, nil
}

// List страница транзакций по фильтру, новые первыми, и общее количество подходящих записей.
func (r *TransactionRepository) List(
	ctx context.Context,
	filter repoargs.TransactionFilter,
) ([]repoargs.TransactionRow, int64, error) {
	where, args := transactionWhere(filter)

	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT count(*) FROM transactions t `+where, args...).Scan(&total); err != nil {
		return nil, 0, convertErr(err, "counting transactions")
	}

	query := fmt.Sprintf(`
		SELECT %s, u.full_name, u.phone_number, s.name, s.type
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		JOIN schemes s ON s.id = t.scheme_id
		%s
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2) //nolint:mnd
	args = append(args, int64(filter.Limit), int64(filter.Offset))

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, convertErr(err, "listing transactions")
	}
	items, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.TransactionRow, error) {
		var item repoargs.TransactionRow
		scanErr := row.Scan(
			&item.ID,
			&item.CreatedAt,
			&item.UserID,
			&item.SchemeID,
			&item.AdminID,
			&item.Amount,
			&item.Type,
			&item.Date,
			&item.Notes,
			&item.MemberName,
			&item.MemberPhone,
			&item.SchemeName,
			&item.SchemeType,
		)
		return item, scanErr //nolint:wrapcheck
	})
	if collectErr != nil {
		return nil, 0, convertErr(collectErr, "listing transactions")
	}
	return items, total, nil
}

// Totals суммы по типам по всему журналу.
func (r *TransactionRepository) Totals(ctx context.Context) (*repoargs.TransactionTotals, error) {
	rows, err := r.conn.Query(ctx, `SELECT type, COALESCE(sum(amount), 0) FROM transactions GROUP BY type`)
	if err != nil {
		return nil, convertErr(err, "summing transactions")
	}
	defer rows.Close()

	totals := new(repoargs.TransactionTotals)
	for rows.Next() {
		var typ domain.TransactionType
		var sum decimal.Decimal
		if scanErr := rows.Scan(&typ, &sum); scanErr != nil {
			return nil, convertErr(scanErr, "summing transactions")
		}
		switch typ {
		case domain.TransactionDeposit:
			totals.Deposits = sum
		case domain.TransactionWithdrawal:
			totals.Withdrawals = sum
		case domain.TransactionFee:
			totals.Fees = sum
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "summing transactions")
	}
	return totals, nil
}

func transactionWhere(filter repoargs.TransactionFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != uuid.Nil {
		add("t.user_id = $%d", filter.UserID)
	}
	if filter.SchemeID != uuid.Nil {
		add("t.scheme_id = $%d", filter.SchemeID)
	}
	if filter.Type != "" {
		add("t.type = $%d", filter.Type)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		add(`t.notes ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(search))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, поиск по заметкам идет по подстроке буквально.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func insertTransactionArgs(args repoargs.CreateTransaction) []any {
	return []any{
		args.UserID,
		args.SchemeID,
		args.AdminID,
		args.Amount,
		args.Type,
		args.Date,
		args.Notes,
	}
}

func collectTransaction(row pgx.CollectableRow) (domain.Transaction, error) {
	t, err := scanTransaction(row)
	if err != nil {
		return domain.Transaction{}, err
	}
	return *t, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UserID,
		&t.SchemeID,
		&t.AdminID,
		&t.Amount,
		&t.Type,
		&t.Date,
		&t.Notes,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &t, nil
}
