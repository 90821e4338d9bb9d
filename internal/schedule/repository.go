package schedule

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
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	// GetActive returns the active schedule for a barber on a date, or
	// ErrNoSchedule when none is configured.
	GetActive(ctx context.Context, barberID, workDate string) (*Schedule, error)
	List(ctx context.Context, filter Filter) ([]*Schedule, int, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// work_date is selected as ::text so the plain YYYY-MM-DD string survives
// untouched; scanning into time.Time and reformatting invites timezone
// shifts around midnight.
var scheduleColumns = []string{
	"s.id", "s.barber_id", "b.name", "s.work_date::text",
	"s.entry_minute", "s.exit_minute", "s.is_active", "s.created_at",
}

func (r *pgxRepository) Create(ctx context.Context, s *Schedule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedules").
		Columns("barber_id", "work_date", "entry_minute", "exit_minute", "is_active").
		Values(s.BarberID, s.WorkDate, int(s.EntryMinute), int(s.ExitMinute), s.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create schedule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyExists
			case pgerrcode.ForeignKeyViolation:
				return ErrBarberNotFound
			}
		}
		return fmt.Errorf("create schedule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Schedule, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id}, ErrNotFound)
}

func (r *pgxRepository) GetActive(ctx context.Context, barberID, workDate string) (*Schedule, error) {
	return r.getOne(ctx, squirrel.And{
		squirrel.Eq{"s.barber_id": barberID},
		squirrel.Expr("s.work_date = ?::date", workDate),
		squirrel.Eq{"s.is_active": true},
	}, ErrNoSchedule)
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer, notFound error) (*Schedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(scheduleColumns...).
		From("public.schedules s").
		Join("public.barbers b ON s.barber_id = b.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule query failed: %w", err)
	}

	var s Schedule
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.BarberID, &s.BarberName, &s.WorkDate,
		&s.EntryMinute, &s.ExitMinute, &s.IsActive, &s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("get schedule failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Schedule, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(scheduleColumns, "count(*) OVER() as total_count")...).
		From("public.schedules s").
		Join("public.barbers b ON s.barber_id = b.id")

	if filter.BarberID != "" {
		query = query.Where(squirrel.Eq{"s.barber_id": filter.BarberID})
	}
	if filter.WorkDate != "" {
		query = query.Where(squirrel.Expr("s.work_date = ?::date", filter.WorkDate))
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"s.is_active": true})
	}

	query = query.OrderBy("s.work_date DESC", "b.name ASC")

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
		return nil, 0, fmt.Errorf("build list schedules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schedules failed: %w", err)
	}
	defer rows.Close()

	var schedules []*Schedule
	var total int

	for rows.Next() {
		var s Schedule
		if err := rows.Scan(
			&s.ID, &s.BarberID, &s.BarberName, &s.WorkDate,
			&s.EntryMinute, &s.ExitMinute, &s.IsActive, &s.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan schedule failed: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Schedule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.schedules").
		Set("entry_minute", int(s.EntryMinute)).
		Set("exit_minute", int(s.ExitMinute)).
		Set("is_active", s.IsActive).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update schedule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("update schedule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete schedule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete schedule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
