package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedCalendar размечает производственный календарь на год вперёд:
// рабочие дни по пятидневке, без учёта переносов праздников.
// Праздники правятся в таблице вручную.
func seedCalendar(ctx context.Context, db *pgxpool.Pool, year int) error {
	log.Printf("  - Наполнение таблицы 'calendar' за %d год...", year)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO calendar (day, is_working) VALUES ($1, $2)
			  ON CONFLICT (day) DO NOTHING`

	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		isWorking := day.Weekday() != time.Saturday && day.Weekday() != time.Sunday
		if _, err := tx.Exec(ctx, query, day, isWorking); err != nil {
			return err
		}
		day = day.AddDate(0, 0, 1)
	}

	return tx.Commit(ctx)
}
