package services

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/terratensor/siruta/internal/adapters/exporters"
	"github.com/terratensor/siruta/internal/app/pipeline"
	"github.com/terratensor/siruta/internal/config"
	"github.com/terratensor/siruta/internal/core/domain"
	"github.com/terratensor/siruta/internal/core/ports"
)

// Generator runs the whole seed pipeline: prior identifiers, static
// skeleton, registry parse, id assignment, advisory validation, write.
type Generator struct {
	cfg           *config.Config
	writerFactory *exporters.WriterFactory
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:           cfg,
		writerFactory: exporters.NewWriterFactory(),
	}
}

func (g *Generator) Run(ctx context.Context) error {
	// Шаг 0: без официального реестра не стартуем
	if _, err := os.Stat(g.cfg.SirutaPath); err != nil {
		return fmt.Errorf("registry extract %s not found: %w", g.cfg.SirutaPath, err)
	}

	// Шаг 1: идентификаторы предыдущего экспорта
	codeIDs, registryIDs, err := pipeline.NewPriorExportParser(g.cfg).Parse(ctx, g.cfg.PriorExportPath)
	if err != nil {
		return fmt.Errorf("failed to load prior export: %w", err)
	}

	// Шаг 2: статический каркас NUTS
	builder, err := NewHierarchyBuilder()
	if err != nil {
		return fmt.Errorf("reference tables inconsistent: %w", err)
	}

	// Шаг 3: местные единицы из официального реестра
	units, _, err := pipeline.NewSirutaParser(g.cfg).ParseFile(ctx, g.cfg.SirutaPath)
	if err != nil {
		return fmt.Errorf("failed to parse registry: %w", err)
	}

	// Шаг 4: сборка и назначение идентификаторов
	territories := g.assemble(builder, units, codeIDs, registryIDs)
	log.Printf("Generated %d territories total", len(territories))

	// Шаг 5: консультативная проверка, вывод не блокируется
	report := Validate(territories)
	report.Log()
	if !report.OK() {
		log.Println("Warning: validation failed, but continuing to write output")
	}

	// Шаг 6: сортировка и запись
	SortTerritories(territories)
	return g.write(territories)
}

// assemble collects territories in assignment order: static skeleton,
// registry units in file order, manual units in declared order
func (g *Generator) assemble(builder *HierarchyBuilder, units []*domain.Territory, codeIDs, registryIDs map[string]int64) []*domain.Territory {
	territories := builder.Build()
	territories = append(territories, units...)

	// Единицы INS, отсутствующие в официальной выгрузке
	for _, u := range domain.ManualUnits {
		territories = append(territories, &domain.Territory{
			Code:         u.RegistryCode,
			RegistryCode: u.RegistryCode,
			Level:        domain.LevelLAU,
			ParentCode:   u.County,
			Name:         u.Name,
			UrbanFlag:    "0",
			Source:       domain.SourceManualOverride,
		})
	}

	registry := NewIDRegistry(codeIDs, registryIDs)
	for _, t := range territories {
		t.ID = registry.Resolve(t.Code, t.RegistryCode)
	}
	if minted := registry.Minted(); minted > 0 {
		log.Printf("Assigned %d new identifiers", minted)
	}

	return territories
}

// SortTerritories orders by level depth then code, the layout of the seed file
func SortTerritories(territories []*domain.Territory) {
	sort.SliceStable(territories, func(i, j int) bool {
		if territories[i].Level.Depth() != territories[j].Level.Depth() {
			return territories[i].Level.Depth() < territories[j].Level.Depth()
		}
		return territories[i].Code < territories[j].Code
	})
}

func (g *Generator) write(territories []*domain.Territory) error {
	options := ports.ExportOptions{
		Format:        ports.ExportFormat(g.cfg.OutputFormat),
		FilePath:      g.cfg.OutputPath,
		IncludeHeader: true,
		Delimiter:     g.cfg.OutputDelimiter,
		Columns:       domain.SeedColumns,
	}

	writer, err := g.writerFactory.CreateFileWriter(options.FilePath, options)
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}

	if err := writer.WriteHeader(domain.SeedColumns); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range territories {
		if err := writer.WriteRecord(t.Record()); err != nil {
			writer.Close()
			return fmt.Errorf("failed to write record at %d: %w", i, err)
		}
	}

	// Закрываем до чтения образца: Close сбрасывает буферы на диск
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish export: %w", err)
	}

	log.Printf("Wrote %d territories to %s", len(territories), options.FilePath)

	if options.Format == ports.FormatCSV {
		g.logSample(options.FilePath)
	}
	return nil
}

// logSample prints the first rows of the written file, header included
func (g *Generator) logSample(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		return
	}
	defer file.Close()

	log.Println("Sample output (first 10 rows):")
	scanner := bufio.NewScanner(file)
	for i := 0; scanner.Scan() && i < 11; i++ {
		log.Printf("  %s", scanner.Text())
	}
}
