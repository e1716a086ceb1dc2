package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terratensor/siruta/internal/app/services"
	"github.com/terratensor/siruta/internal/config"
)

func main() {
	// Парсим флаги командной строки
	var (
		inputPath  string
		priorPath  string
		outputPath string
		format     string
	)

	flag.StringVar(&inputPath, "input", "", "path to the official SIRUTA extract (default: SIRUTA_PATH)")
	flag.StringVar(&priorPath, "prior", "", "path to the previous export used to keep IDs stable")
	flag.StringVar(&outputPath, "output", "", "output seed file path")
	flag.StringVar(&format, "format", "", "output format (csv, json)")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Флаги перекрывают конфигурацию
	if inputPath != "" {
		cfg.SirutaPath = inputPath
	}
	if priorPath != "" {
		cfg.PriorExportPath = priorPath
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if format != "" {
		cfg.OutputFormat = format
	}

	// Создаём контекст с отменой для graceful shutdown
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

	// Создаём и запускаем генератор
	generator := services.NewGenerator(cfg)

	if err := generator.Run(ctx); err != nil {
		log.Fatalf("Seed generation failed: %v", err)
	}

	fmt.Println("Seed generation completed successfully!")
}
