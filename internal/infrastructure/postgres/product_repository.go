package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, price, quantity, supplier_id, min_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. name_search guarda el nombre normalizado
// (minúsculas, sin acentos) para la búsqueda.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_search, category, price, quantity, supplier_id, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, normalize.Fold(product.Name), product.Category,
		product.Price, product.Quantity, product.SupplierID, product.MinStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByNameAndSupplier obtiene un producto por nombre y proveedor (chequeo de duplicados).
func (r *ProductRepo) GetByNameAndSupplier(name string, supplierID *string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE name = $1 AND supplier_id IS NOT DISTINCT FROM $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, supplierID), "get product by name")
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
// Devuelve nil si no existe. Solo tiene sentido con un Querier atado a una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update actualiza los campos del catálogo. No toca Quantity (se maneja vía
// AddQuantity/DecrementQuantity dentro del motor).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, name_search = $3, category = $4, price = $5,
			supplier_id = $6, min_stock = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, normalize.Fold(product.Name), product.Category,
		product.Price, product.SupplierID, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Patch aplica una actualización parcial. Si cambia el nombre, recalcula name_search.
func (r *ProductRepo) Patch(id string, patch repository.ProductPatch) error {
	var fields []patchField
	if patch.Name != nil {
		fields = append(fields,
			patchField{"name", *patch.Name},
			patchField{"name_search", normalize.Fold(*patch.Name)},
		)
	}
	if patch.Category != nil {
		fields = append(fields, patchField{"category", *patch.Category})
	}
	if patch.Price != nil {
		fields = append(fields, patchField{"price", *patch.Price})
	}
	if patch.SupplierID != nil {
		fields = append(fields, patchField{"supplier_id", *patch.SupplierID})
	}
	if patch.MinStock != nil {
		fields = append(fields, patchField{"min_stock", *patch.MinStock})
	}
	clause, args := buildPatch(fields)
	if clause == "" {
		return nil
	}
	query := `UPDATE products SET ` + clause + `, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("patch product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddQuantity incrementa el stock (entradas de mercancía, restauración por
// eliminación de venta).
func (r *ProductRepo) AddQuantity(id string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("add product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementQuantity reduce el stock dentro de la transacción de venta. El motor
// valida bajo el lock de fila que el decremento acumulado no exceda el stock
// antes de llamar acá.
func (r *ProductRepo) DecrementQuantity(id string, qty int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity - $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("decrement product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con el nombre del proveedor resuelto, paginado.
func (r *ProductRepo) List(limit, offset int) ([]*entity.ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category, p.price, p.quantity, p.supplier_id, p.min_stock,
			p.created_at, p.updated_at, COALESCE(s.name, '')
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProductViews(rows)
}

// SearchByName busca por prefijo o infijo sobre el nombre normalizado. El
// caller entrega el término ya normalizado (pkg/normalize).
func (r *ProductRepo) SearchByName(normalized string, limit int) ([]*entity.ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category, p.price, p.quantity, p.supplier_id, p.min_stock,
			p.created_at, p.updated_at, COALESCE(s.name, '')
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.name_search LIKE '%' || $1 || '%'
		ORDER BY p.name ASC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, normalized, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProductViews(rows)
}

// ListBelowMinStock lista los productos con stock por debajo de su umbral.
func (r *ProductRepo) ListBelowMinStock() ([]*entity.ProductView, error) {
	query := `
		SELECT p.id, p.name, p.category, p.price, p.quantity, p.supplier_id, p.min_stock,
			p.created_at, p.updated_at, COALESCE(s.name, '')
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.quantity < p.min_stock
		ORDER BY p.quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()
	return scanProductViews(rows)
}

// Delete elimina un producto del catálogo. Las ventas históricas conservan sus
// ítems: sale_items.product_id no tiene FK hacia products.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity,
		&p.SupplierID, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProductViews(rows pgx.Rows) ([]*entity.ProductView, error) {
	var views []*entity.ProductView
	for rows.Next() {
		var v entity.ProductView
		err := rows.Scan(
			&v.ID, &v.Name, &v.Category, &v.Price, &v.Quantity,
			&v.SupplierID, &v.MinStock, &v.CreatedAt, &v.UpdatedAt, &v.SupplierName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		views = append(views, &v)
	}
	return views, rows.Err()
}
