package servicetype

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, st *ServiceType) error
	GetByID(ctx context.Context, id string) (*ServiceType, error)
	List(ctx context.Context, filter Filter) ([]*ServiceType, int, error)
	Update(ctx context.Context, st *ServiceType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, st *ServiceType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.service_types").
		Columns("name", "description", "duration_minutes", "price").
		Values(st.Name, st.Description, st.DurationMinutes, st.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service type query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ServiceType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "description", "duration_minutes", "price", "created_at", "updated_at",
	).
		From("public.service_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service type query failed: %w", err)
	}

	var st ServiceType
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&st.ID, &st.Name, &st.Description, &st.DurationMinutes, &st.Price,
		&st.CreatedAt, &st.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service type failed: %w", err)
	}
	return &st, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*ServiceType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "description", "duration_minutes", "price", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.service_types").
		OrderBy("name ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list service types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list service types failed: %w", err)
	}
	defer rows.Close()

	var result []*ServiceType
	var total int

	for rows.Next() {
		var st ServiceType
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Description, &st.DurationMinutes, &st.Price,
			&st.CreatedAt, &st.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan service type failed: %w", err)
		}
		result = append(result, &st)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, st *ServiceType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.service_types").
		Set("name", st.Name).
		Set("description", st.Description).
		Set("duration_minutes", st.DurationMinutes).
		Set("price", st.Price).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": st.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update service type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.service_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("delete service type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
