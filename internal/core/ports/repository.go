package ports

import (
	"context"

	"github.com/terratensor/siruta/internal/core/domain"
)

// TerritoryRepository определяет порт для поискового хранилища территорий
type TerritoryRepository interface {
	// Схема
	InitSchema(ctx context.Context) error

	// Запись
	InsertBatch(ctx context.Context, territories []*domain.Territory) error
	Truncate(ctx context.Context) error

	// Административные операции
	Count(ctx context.Context) (int64, error)
}
