package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, quantity, initial_quantity, unit_cost, sale_price, reorder_threshold, expiry_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.InitialQuantity, &p.UnitCost,
		&p.SalePrice, &p.ReorderThreshold, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Quantity, p.InitialQuantity, p.UnitCost,
		p.SalePrice, p.ReorderThreshold, p.ExpiryDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStock actualiza el stock cacheado y el costo promedio (usado por el libro de inventario).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int, unitCost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, unit_cost = $3, updated_at = now() WHERE id = $1`,
		id, quantity, unitCost,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product stock %s: %w", id, domain.ErrProductNotFound)
	}
	return nil
}

// List lista productos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBelowReorder productos en o por debajo del umbral de reposición.
func (r *ProductRepo) ListBelowReorder(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE quantity <= reorder_threshold ORDER BY name, id`)
}

// ListExpiringBefore productos con vencimiento anterior a before.
func (r *ProductRepo) ListExpiringBefore(ctx context.Context, before time.Time) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE expiry_date IS NOT NULL AND expiry_date < $1 ORDER BY expiry_date, name`, before)
}
