package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terratensor/siruta/internal/app/pipeline"
	"github.com/terratensor/siruta/internal/app/services"
	"github.com/terratensor/siruta/internal/config"
)

// Перепроверяет готовый seed-файл тем же консультативным валидатором,
// которым пользуется генератор.
func main() {
	var inputPath string
	flag.StringVar(&inputPath, "input", "", "seed file to check (default: OUTPUT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if inputPath == "" {
		inputPath = cfg.OutputPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	territories, err := pipeline.NewSeedReader(cfg).Read(ctx, inputPath)
	if err != nil {
		log.Fatalf("Failed to read seed: %v", err)
	}

	report := services.Validate(territories)
	report.Log()

	if !report.OK() {
		os.Exit(1)
	}
}
