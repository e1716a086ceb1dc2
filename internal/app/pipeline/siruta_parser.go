package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/terratensor/siruta/internal/config"
	"github.com/terratensor/siruta/internal/core/domain"
)

// Required header columns of the official extract. NUTS, TIP and MED are
// optional and default to empty.
var sirutaRequiredColumns = []string{"niv", "siruta", "denloc", "jud"}

// Уровень NIV, соответствующий административным единицам (UAT)
const localUnitLevel = "2"

// SirutaParser handles parsing of the official SIRUTA extract
type SirutaParser struct {
	*BaseParser
}

func NewSirutaParser(cfg *config.Config) *SirutaParser {
	return &SirutaParser{
		BaseParser: NewBaseParser(cfg),
	}
}

// ParseFile reads the registry extract and returns the local units (NIV=2)
// in file order, plus the number of rows dropped for unresolvable
// jurisdiction codes.
func (p *SirutaParser) ParseFile(ctx context.Context, filePath string) ([]*domain.Territory, int64, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Create progress bar
	bar, err := p.ProgressBar(file, fmt.Sprintf("Parsing %s", filepath.Base(filePath)))
	if err != nil {
		return nil, 0, err
	}

	reader := p.DelimitedReader(file, p.cfg.SirutaDelimiter)

	// Шаг 1: читаем заголовок и находим колонки по именам
	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	idx := columnIndex(header)
	for _, col := range sirutaRequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q in %s", col, filePath)
		}
	}

	// Шаг 2: отбираем строки уровня UAT
	var units []*domain.Territory
	var dropped int64
	var line int64 = 1

	for {
		select {
		case <-ctx.Done():
			return nil, dropped, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, dropped, fmt.Errorf("error reading record at line %d: %w", line+1, err)
		}
		line++
		bar.Add(recordSize(record))

		if columnAt(record, idx, "niv") != localUnitLevel {
			continue
		}

		siruta := columnAt(record, idx, "siruta")
		name := columnAt(record, idx, "denloc")
		if p.cfg.NormalizeNames {
			name = domain.NormalizeCedillas(name)
		}

		// Неразрешимый код жудеца не фатален: в реестре встречаются
		// специальные диапазоны вне территориальной структуры
		judRaw := columnAt(record, idx, "jud")
		jud, err := strconv.Atoi(judRaw)
		if err != nil {
			log.Printf("Warning: invalid JUD code %q for %s", judRaw, name)
			dropped++
			continue
		}
		county, ok := domain.JudToCounty[jud]
		if !ok {
			log.Printf("Warning: unknown JUD code %d for %s", jud, name)
			dropped++
			continue
		}

		urban := "0"
		if columnAt(record, idx, "med") == "1" {
			urban = "1"
		}

		units = append(units, &domain.Territory{
			Code:         siruta,
			RegistryCode: siruta,
			Level:        domain.LevelLAU,
			ParentCode:   county,
			Name:         name,
			NUTSHint:     columnAt(record, idx, "nuts"),
			TypeHint:     columnAt(record, idx, "tip"),
			UrbanFlag:    urban,
			Source:       domain.SourceRegistry,
		})
	}

	log.Printf("Parsed %d local units from %s (%d rows dropped)", len(units), filepath.Base(filePath), dropped)
	return units, dropped, nil
}

// recordSize приближённо оценивает размер строки для прогресс-бара
func recordSize(record []string) int {
	size := len(record) // разделители и перевод строки
	for _, f := range record {
		size += len(f)
	}
	return size
}
