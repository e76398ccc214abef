package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Типы оборудования и их сроки согласования в рабочих днях.
var equipmentTypesData = []struct {
	Name string
	Term int
}{
	{"Штамп", 10},
	{"Пресс-форма", 14},
	{"Кондуктор", 5},
	{"Калибр", 3},
	{"Приспособление", 7},
	{"Режущий инструмент", 5},
	{"Мерительный инструмент", 3},
}

func seedEquipmentTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'order_approval_types'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO order_approval_types (name, term) VALUES ($1, $2)
			  ON CONFLICT (name) DO NOTHING`

	for _, t := range equipmentTypesData {
		if _, err := tx.Exec(ctx, query, t.Name, t.Term); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
