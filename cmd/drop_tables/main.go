package main

import (
	"context"
	"log"

	"github.com/terratensor/siruta/internal/adapters/repositories/manticore"
	"github.com/terratensor/siruta/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Создаём Manticore клиент
	client, err := manticore.NewClient(cfg.ManticoreHost, cfg.ManticorePort)
	if err != nil {
		log.Fatalf("Failed to create manticore client: %v", err)
	}

	ctx := context.Background()

	// Список таблиц для удаления
	tables := []string{
		manticore.TableTerritories,
	}

	log.Println("Dropping existing tables...")

	for _, table := range tables {
		// Проверяем существует ли таблица
		exists, err := client.TableExists(ctx, table)
		if err != nil {
			log.Printf("Warning: failed to check table %s: %v", table, err)
			continue
		}

		if !exists {
			log.Printf("Table %s does not exist, skipping", table)
			continue
		}

		log.Printf("Dropping table %s...", table)

		if err := client.DropTable(ctx, table); err != nil {
			log.Printf("Error dropping table %s: %v", table, err)
			continue
		}

		log.Printf("Table %s dropped successfully", table)
	}

	log.Println("Done. Run index_territories to rebuild the search table")
}
