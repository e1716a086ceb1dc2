package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/terratensor/siruta/internal/adapters/downloader"
	"github.com/terratensor/siruta/internal/config"
)

func main() {
	var filename string
	flag.StringVar(&filename, "file", "siruta.zip", "registry file to fetch, relative to SIRUTA_BASE_URL")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
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

	dl := downloader.New(cfg)

	log.Printf("Fetching %s...", filename)
	localPath, err := dl.DownloadFile(ctx, filename)
	if err != nil {
		log.Fatalf("Download failed: %v", err)
	}

	files := []string{localPath}
	if filepath.Ext(localPath) == ".zip" {
		files, err = dl.ExtractZip(localPath)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}
	}

	log.Println("Registry files ready:")
	for _, f := range files {
		log.Printf("  %s", f)
	}
	log.Printf("Point SIRUTA_PATH at the extract and run the generator")
}
