package repository

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListActiveWithReorderLevel devuelve los productos activos con umbral de
	// reposición configurado (reorder_level > 0), para la detección de stock bajo.
	ListActiveWithReorderLevel(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
