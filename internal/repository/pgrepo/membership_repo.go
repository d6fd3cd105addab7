package pgrepo

import (
	"context"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const membershipColumns = `m.id, m.created_at, m.updated_at, m.scheme_id, m.user_id, m.status, m.joined_at,
	m.payout_order`

type MembershipRepository struct {
	conn DBTX
}

func NewMembershipRepository(conn DBTX) *MembershipRepository {
	return &MembershipRepository{conn: conn}
}

// BatchCreate добавляет участников одним батчем. Уже существующие пары (scheme_id, user_id) возвращают
// domain.ErrDuplicateKey в колбек.
func (r *MembershipRepository) BatchCreate(
	ctx context.Context,
	memberships []repoargs.CreateMembership,
	fn repoargs.BatchExecQueryRow,
) {
	if len(memberships) == 0 {
		return
	}
	batch := new(pgx.Batch)
	for _, m := range memberships {
		batch.Queue(`INSERT INTO scheme_members (scheme_id, user_id, joined_at) VALUES ($1, $2, $3)`,
			m.SchemeID, m.UserID, m.JoinedAt)
	}

	br := r.conn.SendBatch(ctx, batch)
	defer br.Close()

	for i, m := range memberships {
		_, err := br.Exec()
		fn(i, convertErr(err, "adding user %s to scheme %s", m.UserID, m.SchemeID))
	}
}

func (r *MembershipRepository) Find(ctx context.Context, schemeID, userID uuid.UUID) (*domain.Membership, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT `+membershipColumns+`
		FROM scheme_members m
		WHERE m.scheme_id = $1 AND m.user_id = $2`,
		schemeID, userID,
	)
	membership, err := scanMembership(row)
	if err != nil {
		return nil, convertErr(err, "finding membership of user %s in scheme %s", userID, schemeID)
	}
	return membership, nil
}

// FindForUpdate то же что Find, но блокирует строку участия до конца транзакции. Вызывать только внутри
// uow.Do.
func (r *MembershipRepository) FindForUpdate(
	ctx context.Context,
	schemeID, userID uuid.UUID,
) (*domain.Membership, error) {
	row := r.conn.QueryRow(ctx, `
		SELECT `+membershipColumns+`
		FROM scheme_members m
		WHERE m.scheme_id = $1 AND m.user_id = $2
		FOR UPDATE`,
		schemeID, userID,
	)
	membership, err := scanMembership(row)
	if err != nil {
		return nil, convertErr(err, "locking membership of user %s in scheme %s", userID, schemeID)
	}
	return membership, nil
}

// ListBySchemeID участники схемы в порядке выплаты, затем по дате вступления.
func (r *MembershipRepository) ListBySchemeID(ctx context.Context, schemeID uuid.UUID) ([]repoargs.MemberRow, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+membershipColumns+`, u.full_name, u.phone_number, u.email
		FROM scheme_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.scheme_id = $1
		ORDER BY m.payout_order NULLS LAST, m.joined_at`,
		schemeID,
	)
	if err != nil {
		return nil, convertErr(err, "listing members of scheme %s", schemeID)
	}
	members, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.MemberRow, error) {
		var m repoargs.MemberRow
		scanErr := row.Scan(
			&m.Membership.ID,
			&m.Membership.CreatedAt,
			&m.Membership.UpdatedAt,
			&m.Membership.SchemeID,
			&m.Membership.UserID,
			&m.Membership.Status,
			&m.Membership.JoinedAt,
			&m.Membership.PayoutOrder,
			&m.FullName,
			&m.PhoneNumber,
			&m.Email,
		)
		return m, scanErr //nolint:wrapcheck
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing members of scheme %s", schemeID)
	}
	return members, nil
}

// ListByUserID схемы, в которых участвует юзер, последние вступления первыми.
func (r *MembershipRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]repoargs.MemberScheme, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+membershipColumns+`, `+schemeColumns+`
		FROM scheme_members m
		JOIN schemes s ON s.id = m.scheme_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "listing schemes of user %s", userID)
	}
	items, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repoargs.MemberScheme, error) {
		var item repoargs.MemberScheme
		var rules []byte
		if scanErr := row.Scan(
			&item.Membership.ID,
			&item.Membership.CreatedAt,
			&item.Membership.UpdatedAt,
			&item.Membership.SchemeID,
			&item.Membership.UserID,
			&item.Membership.Status,
			&item.Membership.JoinedAt,
			&item.Membership.PayoutOrder,
			&item.Scheme.ID,
			&item.Scheme.CreatedAt,
			&item.Scheme.UpdatedAt,
			&item.Scheme.AdminID,
			&item.Scheme.Name,
			&item.Scheme.Description,
			&item.Scheme.Type,
			&item.Scheme.ContributionAmount,
			&item.Scheme.Frequency,
			&rules,
			&item.Scheme.StartDate,
			&item.Scheme.EndDate,
		); scanErr != nil {
			return item, scanErr //nolint:wrapcheck
		}
		if len(rules) > 0 {
			if rulesErr := item.Scheme.Rules.UnmarshalJSON(rules); rulesErr != nil {
				return item, rulesErr //nolint:wrapcheck
			}
		}
		return item, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing schemes of user %s", userID)
	}
	return items, nil
}

// Update меняет статус и/или порядок выплаты. Поля с nil не трогаются.
func (r *MembershipRepository) Update(
	ctx context.Context,
	args repoargs.UpdateMembership,
) (*domain.Membership, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE scheme_members AS m
		SET status       = COALESCE($3, m.status),
		    payout_order = COALESCE($4, m.payout_order),
		    updated_at   = now()
		WHERE m.scheme_id = $1 AND m.user_id = $2
		RETURNING `+membershipColumns,
		args.SchemeID,
		args.UserID,
		args.Status,
		args.PayoutOrder,
	)
	membership, err := scanMembership(row)
	if err != nil {
		return nil, convertErr(err, "updating membership of user %s in scheme %s", args.UserID, args.SchemeID)
	}
	return membership, nil
}

// Delete удаляет участников userIDs из схемы. Возвращает количество удаленных строк.
func (r *MembershipRepository) Delete(ctx context.Context, schemeID uuid.UUID, userIDs []uuid.UUID) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	tag, err := r.conn.Exec(ctx, `DELETE FROM scheme_members WHERE scheme_id = $1 AND user_id = ANY($2)`,
		schemeID, userIDs)
	if err != nil {
		return 0, convertErr(err, "removing members from scheme %s", schemeID)
	}
	return tag.RowsAffected(), nil
}

// CompleteActive переводит всех активных участников схемы в статус completed.
func (r *MembershipRepository) CompleteActive(ctx context.Context, schemeID uuid.UUID) (int64, error) {
	tag, err := r.conn.Exec(ctx, `
		UPDATE scheme_members
		SET status = $2, updated_at = now()
		WHERE scheme_id = $1 AND status = $3`,
		schemeID, domain.MembershipCompleted, domain.MembershipActive,
	)
	if err != nil {
		return 0, convertErr(err, "completing memberships of scheme %s", schemeID)
	}
	return tag.RowsAffected(), nil
}

func scanMembership(row rowScanner) (*domain.Membership, error) {
	var m domain.Membership
	if err := row.Scan(
		&m.ID,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.SchemeID,
		&m.UserID,
		&m.Status,
		&m.JoinedAt,
		&m.PayoutOrder,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &m, nil
}
