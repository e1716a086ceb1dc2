package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/terratensor/siruta/internal/config"
	"github.com/terratensor/siruta/internal/core/domain"
	"github.com/terratensor/siruta/internal/core/ports"
)

// Indexer loads a seed into the search storage in batches
type Indexer struct {
	cfg      *config.Config
	repo     ports.TerritoryRepository
	truncate bool
}

func NewIndexer(cfg *config.Config, repo ports.TerritoryRepository, truncate bool) *Indexer {
	return &Indexer{
		cfg:      cfg,
		repo:     repo,
		truncate: truncate,
	}
}

func (i *Indexer) Run(ctx context.Context, territories []*domain.Territory) error {
	start := time.Now()

	// Шаг 1: схема
	log.Println("Initializing search schema...")
	if err := i.repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}

	if i.truncate {
		if err := i.repo.Truncate(ctx); err != nil {
			return fmt.Errorf("failed to truncate table: %w", err)
		}
	}

	// Шаг 2: материализованные пути; сломанное дерево в индекс не попадает
	if err := NewPathBuilder(territories).BuildPaths(); err != nil {
		return fmt.Errorf("failed to build paths: %w", err)
	}

	// Шаг 3: батчевая вставка
	batchSize := i.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	var inserted int64
	batchCount := 0
	for begin := 0; begin < len(territories); begin += batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := begin + batchSize
		if end > len(territories) {
			end = len(territories)
		}

		if err := i.repo.InsertBatch(ctx, territories[begin:end]); err != nil {
			return fmt.Errorf("failed to insert batch at %d: %w", begin, err)
		}

		inserted += int64(end - begin)
		batchCount++
		if batchCount%10 == 0 {
			log.Printf("Inserted %d territories so far...", inserted)
		}
	}

	// Шаг 4: сверка количества
	count, err := i.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count table: %w", err)
	}
	log.Printf("Indexed %d territories in %v (table reports %d)", inserted, time.Since(start), count)

	return nil
}
