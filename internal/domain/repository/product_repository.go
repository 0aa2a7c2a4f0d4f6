package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo de productos.
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock actualiza el stock cacheado y el costo; solo lo invoca el libro de inventario.
	UpdateStock(ctx context.Context, id string, quantity int, unitCost decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListBelowReorder(ctx context.Context) ([]*entity.Product, error)
	ListExpiringBefore(ctx context.Context, before time.Time) ([]*entity.Product, error)
}
