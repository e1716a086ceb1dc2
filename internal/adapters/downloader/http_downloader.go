package downloader

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/terratensor/siruta/internal/config"
)

// Downloader fetches registry files over HTTP into the data dir
type Downloader struct {
	client *http.Client
	cfg    *config.Config
}

func New(cfg *config.Config) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: cfg.DownloadTimeout,
		},
		cfg: cfg,
	}
}

// DownloadFile fetches a registry file into the data dir. Files already on
// disk are not re-downloaded.
func (d *Downloader) DownloadFile(ctx context.Context, filename string) (string, error) {
	url := d.cfg.SirutaBaseURL + filename
	localPath := filepath.Join(d.cfg.DataDir, filename)

	if err := os.MkdirAll(d.cfg.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	if _, err := os.Stat(localPath); err == nil {
		log.Printf("File already exists: %s", localPath)
		return localPath, nil
	}

	attempts := d.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			log.Printf("Retry %d for %s", attempt+1, filename)
			time.Sleep(time.Second * time.Duration(attempt))
		}

		if lastErr = d.fetch(ctx, url, localPath, filename); lastErr == nil {
			return localPath, nil
		}
	}

	return "", fmt.Errorf("failed to download %s after %d attempts: %w", filename, attempts, lastErr)
}

// fetch качает во временный файл и переименовывает только целиком
// скачанный результат, чтобы обрыв не оставил битый файл под целевым именем
func (d *Downloader) fetch(ctx context.Context, url, localPath, filename string) (err error) {
	partPath := localPath + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			os.Remove(partPath)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", filename)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)

	if _, err = io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to flush file: %w", err)
	}

	if err = os.Rename(partPath, localPath); err != nil {
		return fmt.Errorf("failed to finalize download: %w", err)
	}
	return nil
}

// ExtractZip unpacks the archive into the data dir and returns the extracted
// file paths. Entries already present on disk are kept as is.
func (d *Downloader) ExtractZip(zipPath string) ([]string, error) {
	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer archive.Close()

	var files []string
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		// Плоская распаковка: вложенные пути не воспроизводим
		destPath := filepath.Join(d.cfg.DataDir, filepath.Base(entry.Name))
		if _, err := os.Stat(destPath); err == nil {
			files = append(files, destPath)
			continue
		}

		if err := extractEntry(entry, destPath); err != nil {
			return nil, err
		}

		files = append(files, destPath)
		log.Printf("Extracted: %s", destPath)
	}

	return files, nil
}

func extractEntry(entry *zip.File, destPath string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in zip: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}
	return nil
}
