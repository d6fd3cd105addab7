package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const schemeColumns = `s.id, s.created_at, s.updated_at, s.admin_id, s.name, s.description, s.type,
	s.contribution_amount, s.frequency, s.rules, s.start_date, s.end_date`

type SchemeRepository struct {
	conn DBTX
}

func NewSchemeRepository(conn DBTX) *SchemeRepository {
	return &SchemeRepository{conn: conn}
}

func (r *SchemeRepository) Create(ctx context.Context, args repoargs.CreateScheme) (*domain.Scheme, error) {
	rules, rulesErr := json.Marshal(args.Rules)
	if rulesErr != nil {
		return nil, convertErr(rulesErr, "encoding scheme rules")
	}

	row := r.conn.QueryRow(ctx, `
		INSERT INTO schemes AS s (admin_id, name, description, type, contribution_amount, frequency, rules,
		                          start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+schemeColumns,
		args.AdminID,
		args.Name,
		args.Description,
		args.Type,
		args.ContributionAmount,
		args.Frequency,
		rules,
		args.StartDate,
		args.EndDate,
	)
	scheme, err := scanScheme(row)
	if err != nil {
		return nil, convertErr(err, "creating scheme %s", args.Name)
	}
	return scheme, nil
}

func (r *SchemeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Scheme, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+schemeColumns+` FROM schemes s WHERE s.id = $1`, id)
	scheme, err := scanScheme(row)
	if err != nil {
		return nil, convertErr(err, "finding scheme by id %s", id)
	}
	return scheme, nil
}

// List возвращает все схемы, новые первыми.
func (r *SchemeRepository) List(ctx context.Context) ([]domain.Scheme, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+schemeColumns+` FROM schemes s ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "listing schemes")
	}
	schemes, collectErr := pgx.CollectRows(rows, collectScheme)
	if collectErr != nil {
		return nil, convertErr(collectErr, "listing schemes")
	}
	return schemes, nil
}

// GetMatured возвращает ajita схемы с end_date <= at, у которых остались активные участники.
func (r *SchemeRepository) GetMatured(ctx context.Context, at time.Time, limit uint) ([]domain.Scheme, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT `+schemeColumns+`
		FROM schemes s
		WHERE s.type = $1
		  AND s.end_date IS NOT NULL
		  AND s.end_date <= $2
		  AND EXISTS (SELECT 1 FROM scheme_members m WHERE m.scheme_id = s.id AND m.status = $3)
		ORDER BY s.end_date
		LIMIT $4`,
		domain.SchemeAjita,
		at,
		domain.MembershipActive,
		int64(limit),
	)
	if err != nil {
		return nil, convertErr(err, "getting matured schemes")
	}
	schemes, collectErr := pgx.CollectRows(rows, collectScheme)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting matured schemes")
	}
	return schemes, nil
}

func collectScheme(row pgx.CollectableRow) (domain.Scheme, error) {
	scheme, err := scanScheme(row)
	if err != nil {
		return domain.Scheme{}, err
	}
	return *scheme, nil
}

func scanScheme(row rowScanner) (*domain.Scheme, error) {
	var scheme domain.Scheme
	var rules []byte
	if err := row.Scan(
		&scheme.ID,
		&scheme.CreatedAt,
		&scheme.UpdatedAt,
		&scheme.AdminID,
		&scheme.Name,
		&scheme.Description,
		&scheme.Type,
		&scheme.ContributionAmount,
		&scheme.Frequency,
		&rules,
		&scheme.StartDate,
		&scheme.EndDate,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &scheme.Rules); err != nil {
			return nil, fmt.Errorf("decoding rules of scheme %s: %w", scheme.ID, err)
		}
	}
	return &scheme, nil
}
