package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedReferenceData наполняет справочники, без которых движок согласования
// не работает: типы оборудования со сроками и производственный календарь.
func SeedReferenceData(db *pgxpool.Pool, calendarYear int) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedEquipmentTypes(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Типов оборудования: %v", err)
	}
	if err := seedCalendar(ctx, db, calendarYear); err != nil {
		log.Fatalf("❌ Ошибка наполнения Производственного календаря: %v", err)
	}

	log.Println("✅ Наполнение справочников завершено!")
}
