package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terratensor/siruta/internal/adapters/repositories/manticore"
	"github.com/terratensor/siruta/internal/app/pipeline"
	"github.com/terratensor/siruta/internal/app/services"
	"github.com/terratensor/siruta/internal/config"
)

func main() {
	// Парсим флаги командной строки
	var (
		inputPath string
		truncate  bool
	)

	flag.StringVar(&inputPath, "input", "", "seed file to index (default: OUTPUT_PATH)")
	flag.BoolVar(&truncate, "truncate", true, "truncate the territories table before indexing")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if inputPath == "" {
		inputPath = cfg.OutputPath
	}

	// Создаём контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	// Создаём Manticore клиент
	client, err := manticore.NewClient(cfg.ManticoreHost, cfg.ManticorePort)
	if err != nil {
		log.Fatalf("Failed to create manticore client: %v", err)
	}

	// Читаем seed-файл
	territories, err := pipeline.NewSeedReader(cfg).Read(ctx, inputPath)
	if err != nil {
		log.Fatalf("Failed to read seed: %v", err)
	}

	// Индексируем
	indexer := services.NewIndexer(cfg, client, truncate)
	if err := indexer.Run(ctx, territories); err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}

	fmt.Println("Indexing completed successfully!")
}
