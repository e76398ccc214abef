package main

import (
	"flag"
	"log"
	"time"

	"order-approval-system/pkg/config"
	"order-approval-system/pkg/database/postgresql"
	"order-approval-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runReference := flag.Bool("reference", false, "Наполнить справочники (типы оборудования, календарь)")
	calendarYear := flag.Int("year", time.Now().Year(), "Год производственного календаря")

	flag.Parse()

	if !*runReference {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -reference")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")
	seeders.SeedReferenceData(dbPool, *calendarYear)
	log.Println("======================================================")
	log.Println("✅ Все указанные операции сидирования успешно завершены.")
}
