package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/terratensor/siruta/internal/config"
	"github.com/terratensor/siruta/internal/core/domain"
)

// SeedReader reads a complete seed file back into territories. Unlike the
// registry parsers it is strict: a malformed row is an error, not a warning.
type SeedReader struct {
	*BaseParser
}

func NewSeedReader(cfg *config.Config) *SeedReader {
	return &SeedReader{
		BaseParser: NewBaseParser(cfg),
	}
}

// Read loads all territories from a seed CSV
func (r *SeedReader) Read(ctx context.Context, filePath string) ([]*domain.Territory, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	bar, err := r.ProgressBar(file, fmt.Sprintf("Reading %s", filepath.Base(filePath)))
	if err != nil {
		return nil, err
	}

	reader := r.DelimitedReader(file, r.cfg.OutputDelimiter)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := columnIndex(header)
	for _, col := range domain.SeedColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q in %s", col, filePath)
		}
	}

	var territories []*domain.Territory
	var line int64 = 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record at line %d: %w", line+1, err)
		}
		line++
		bar.Add(recordSize(record))

		id, err := r.ParseInt(columnAt(record, idx, "id"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q: %w", line, columnAt(record, idx, "id"), err)
		}

		level, err := domain.ParseLevel(columnAt(record, idx, "level"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		territories = append(territories, &domain.Territory{
			ID:           id,
			Code:         columnAt(record, idx, "code"),
			RegistryCode: columnAt(record, idx, "registry_code"),
			Level:        level,
			ParentCode:   columnAt(record, idx, "parent_code"),
			Name:         columnAt(record, idx, "name"),
			NUTSHint:     columnAt(record, idx, "nuts_hint"),
			TypeHint:     columnAt(record, idx, "type_hint"),
			UrbanFlag:    columnAt(record, idx, "urban_flag"),
			Source:       domain.Source(columnAt(record, idx, "source")),
		})
	}

	log.Printf("Read %d territories from %s", len(territories), filepath.Base(filePath))
	return territories, nil
}
