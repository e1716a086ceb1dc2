package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/terratensor/siruta/internal/config"
)

// PriorExportParser loads identifier maps from a previous export so that
// regeneration keeps the same ids.
type PriorExportParser struct {
	*BaseParser
}

func NewPriorExportParser(cfg *config.Config) *PriorExportParser {
	return &PriorExportParser{
		BaseParser: NewBaseParser(cfg),
	}
}

// Parse returns code→id and registry_code→id maps from the prior export.
// A missing file is a first run: both maps come back empty without error.
func (p *PriorExportParser) Parse(ctx context.Context, filePath string) (map[string]int64, map[string]int64, error) {
	codeIDs := make(map[string]int64)
	registryIDs := make(map[string]int64)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		log.Printf("Warning: %s not found, will generate new IDs", filePath)
		return codeIDs, registryIDs, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	bar, err := p.ProgressBar(file, fmt.Sprintf("Loading %s", filepath.Base(filePath)))
	if err != nil {
		return nil, nil, err
	}

	// Предыдущий экспорт всегда разделён запятыми
	reader := p.DelimitedReader(file, ',')

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := columnIndex(header)
	for _, col := range []string{"id", "code"} {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q in %s", col, filePath)
		}
	}

	var line int64 = 1
	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading record at line %d: %w", line+1, err)
		}
		line++
		bar.Add(recordSize(record))

		id, err := p.ParseInt(columnAt(record, idx, "id"))
		if err != nil {
			log.Printf("Warning: skipping row %d with invalid id %q", line, columnAt(record, idx, "id"))
			continue
		}

		// Поздние строки перекрывают ранние, как и при чтении в словарь
		codeIDs[columnAt(record, idx, "code")] = id
		if registry := columnAt(record, idx, "registry_code"); registry != "" {
			registryIDs[registry] = id
		}
	}

	log.Printf("Loaded %d existing territory IDs", len(codeIDs))
	return codeIDs, registryIDs, nil
}
