package leases

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parklane-pm/parklane/internal/shared"
)

// Repository persists leases.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Lease, int, error)
	Get(ctx context.Context, id int64) (Lease, error)
	Create(ctx context.Context, lease Lease) (Lease, error)
	Update(ctx context.Context, id int64, lease Lease) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed lease repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const leaseColumns = `l.id, l.lease_number, l.tenant_id, t.name, l.unit_id, u.label,
	l.start_date, l.end_date, l.monthly_rent, l.deposit_held, l.created_at, l.updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Lease, int, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		JOIN units u ON u.id = l.unit_id
		WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		placeholder := "$" + strconv.Itoa(argCount)
		query += ` AND (l.lease_number ILIKE ` + placeholder + ` OR t.name ILIKE ` + placeholder + ` OR u.label ILIKE ` + placeholder + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*)
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		JOIN units u ON u.id = l.unit_id
		WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (l.lease_number ILIKE $1 OR t.name ILIKE $1 OR u.label ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY l.lease_number`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []Lease
	for rows.Next() {
		var l Lease
		if err := rows.Scan(&l.ID, &l.LeaseNumber, &l.TenantID, &l.TenantName, &l.UnitID, &l.UnitLabel,
			&l.StartDate, &l.EndDate, &l.MonthlyRent, &l.DepositHeld, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		leases = append(leases, l)
	}
	return leases, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Lease, error) {
	query := `SELECT ` + leaseColumns + `
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		JOIN units u ON u.id = l.unit_id
		WHERE l.id = $1`
	var l Lease
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.LeaseNumber, &l.TenantID, &l.TenantName, &l.UnitID, &l.UnitLabel,
		&l.StartDate, &l.EndDate, &l.MonthlyRent, &l.DepositHeld, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lease{}, shared.ErrNotFound
	}
	return l, err
}

func (r *repository) Create(ctx context.Context, lease Lease) (Lease, error) {
	query := `INSERT INTO leases (lease_number, tenant_id, unit_id, start_date, end_date, monthly_rent, deposit_held, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		lease.LeaseNumber, lease.TenantID, lease.UnitID,
		lease.StartDate, lease.EndDate, lease.MonthlyRent, lease.DepositHeld,
	).Scan(&lease.ID, &lease.CreatedAt, &lease.UpdatedAt)
	if err != nil {
		return Lease{}, mapPgError(err)
	}
	return lease, nil
}

func (r *repository) Update(ctx context.Context, id int64, lease Lease) error {
	query := `UPDATE leases
		SET lease_number = $1, start_date = $2, end_date = $3, monthly_rent = $4, deposit_held = $5, updated_at = now()
		WHERE id = $6`
	tag, err := r.db.Exec(ctx, query,
		lease.LeaseNumber, lease.StartDate, lease.EndDate, lease.MonthlyRent, lease.DepositHeld, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// mapPgError translates unique violations into the domain duplicate error.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
