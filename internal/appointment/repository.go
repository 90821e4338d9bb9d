package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	// ListForDay returns every appointment for a barber on a date, in any
	// status, ordered by start time.
	ListForDay(ctx context.Context, barberID, workDate string) ([]*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	Update(ctx context.Context, a *Appointment) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// work_date is selected as ::text so the plain YYYY-MM-DD string survives
// untouched through the driver.
var appointmentColumns = []string{
	"a.id", "a.barber_id", "b.name", "a.service_type_id", "st.name",
	"a.customer_name", "a.customer_email", "a.customer_phone", "a.comments",
	"a.work_date::text", "a.start_minute", "a.duration_minutes", "a.price",
	"a.status", "a.created_at", "a.updated_at",
}

func scanAppointment(row pgx.Row, extra ...any) (*Appointment, error) {
	var a Appointment
	var rawStatus string
	dest := []any{
		&a.ID, &a.BarberID, &a.BarberName, &a.ServiceTypeID, &a.ServiceName,
		&a.CustomerName, &a.CustomerEmail, &a.CustomerPhone, &a.Comments,
		&a.WorkDate, &a.StartMinute, &a.DurationMinutes, &a.Price,
		&rawStatus, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	a.Status = status
	return &a, nil
}

// mapWriteError translates constraint failures into domain errors. The
// partial unique index on (barber_id, work_date, start_minute) over active
// rows catches same-start races; foreign keys are told apart by constraint
// name.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrSlotConflict
	case pgerrcode.ForeignKeyViolation:
		if strings.Contains(pgErr.ConstraintName, "service_type") {
			return ErrServiceTypeNotFound
		}
		return ErrBarberNotFound
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns(
			"barber_id", "service_type_id", "customer_name", "customer_email",
			"customer_phone", "comments", "work_date", "start_minute",
			"duration_minutes", "price", "status",
		).
		Values(
			a.BarberID, a.ServiceTypeID, a.CustomerName, a.CustomerEmail,
			a.CustomerPhone, a.Comments, squirrel.Expr("?::date", a.WorkDate),
			int(a.StartMinute), a.DurationMinutes, a.Price, string(a.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(appointmentColumns...).
		From("public.appointments a").
		Join("public.barbers b ON a.barber_id = b.id").
		Join("public.service_types st ON a.service_type_id = st.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	a, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) ListForDay(ctx context.Context, barberID, workDate string) ([]*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(appointmentColumns...).
		From("public.appointments a").
		Join("public.barbers b ON a.barber_id = b.id").
		Join("public.service_types st ON a.service_type_id = st.id").
		Where(squirrel.Eq{"a.barber_id": barberID}).
		Where(squirrel.Expr("a.work_date = ?::date", workDate)).
		OrderBy("a.start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build day appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(appointmentColumns, "count(*) OVER() as total_count")...).
		From("public.appointments a").
		Join("public.barbers b ON a.barber_id = b.id").
		Join("public.service_types st ON a.service_type_id = st.id")

	if filter.BarberID != "" {
		query = query.Where(squirrel.Eq{"a.barber_id": filter.BarberID})
	}
	if filter.WorkDate != "" {
		query = query.Where(squirrel.Expr("a.work_date = ?::date", filter.WorkDate))
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": string(filter.Status)})
	}

	query = query.OrderBy("a.work_date DESC", "a.start_minute ASC")

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
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	var total int

	for rows.Next() {
		a, err := scanAppointment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, a)
	}

	return appointments, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("work_date", squirrel.Expr("?::date", a.WorkDate)).
		Set("start_minute", int(a.StartMinute)).
		Set("status", string(a.Status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update appointment failed: %w", err)
	}
	return nil
}
