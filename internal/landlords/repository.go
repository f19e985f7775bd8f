package landlords

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parklane-pm/parklane/internal/shared"
)

// Repository persists landlords.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Landlord, int, error)
	Get(ctx context.Context, id int64) (Landlord, error)
	Create(ctx context.Context, landlord Landlord) (Landlord, error)
	Update(ctx context.Context, id int64, landlord Landlord) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed landlord repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const landlordColumns = `id, name, email, phone, address, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Landlord, int, error) {
	query := `SELECT ` + landlordColumns + ` FROM landlords WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		placeholder := "$" + strconv.Itoa(argCount)
		query += ` AND (name ILIKE ` + placeholder + ` OR email ILIKE ` + placeholder + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM landlords WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR email ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name`
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

	var landlords []Landlord
	for rows.Next() {
		var l Landlord
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		landlords = append(landlords, l)
	}
	return landlords, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Landlord, error) {
	query := `SELECT ` + landlordColumns + ` FROM landlords WHERE id = $1`
	var l Landlord
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Address, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Landlord{}, shared.ErrNotFound
	}
	return l, err
}

func (r *repository) Create(ctx context.Context, landlord Landlord) (Landlord, error) {
	query := `INSERT INTO landlords (name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, landlord.Name, landlord.Email, landlord.Phone, landlord.Address).
		Scan(&landlord.ID, &landlord.CreatedAt, &landlord.UpdatedAt)
	if err != nil {
		return Landlord{}, mapPgError(err)
	}
	return landlord, nil
}

func (r *repository) Update(ctx context.Context, id int64, landlord Landlord) error {
	query := `UPDATE landlords SET name = $1, email = $2, phone = $3, address = $4, updated_at = now() WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, landlord.Name, landlord.Email, landlord.Phone, landlord.Address, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM landlords WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
