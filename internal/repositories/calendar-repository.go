package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalendarRepositoryInterface interface {
	NthWorkingDayAfter(ctx context.Context, after time.Time, n int) (time.Time, bool, error)
	HasWorkingDayAfter(ctx context.Context, after time.Time) (bool, error)
}

type CalendarRepository struct {
	storage *pgxpool.Pool
}

func NewCalendarRepository(storage *pgxpool.Pool) CalendarRepositoryInterface {
	return &CalendarRepository{storage: storage}
}

// NthWorkingDayAfter возвращает n-й отмеченный рабочий день строго после
// заданной даты. Второе значение false - в календаре не хватает дней.
func (r *CalendarRepository) NthWorkingDayAfter(ctx context.Context, after time.Time, n int) (time.Time, bool, error) {
	if n <= 0 {
		return time.Time{}, false, nil
	}

	query, args, err := sq.Select("day").
		From("calendar").
		Where(sq.Gt{"day": after}).
		Where(sq.Eq{"is_working": true}).
		OrderBy("day ASC").
		Offset(uint64(n - 1)).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return time.Time{}, false, err
	}

	var day time.Time
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&day); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return day, true, nil
}

func (r *CalendarRepository) HasWorkingDayAfter(ctx context.Context, after time.Time) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM calendar WHERE day > $1 AND is_working = TRUE)`, after,
	).Scan(&exists)
	return exists, err
}
