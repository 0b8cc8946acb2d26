package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sales (id, customer_id, date, total) VALUES ($1, $2, $3, $4)`,
		sale.ID, sale.CustomerID, sale.Date, sale.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sale_items (id, sale_id, product_id, line_no, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.SaleID, item.ProductID, item.LineNo, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(),
		`SELECT id, customer_id, date, total FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.CustomerID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ItemsBySale lista las líneas de una venta con el nombre del producto
// resuelto, en el orden de la solicitud original (line_no). Si el producto fue
// eliminado del catálogo, el nombre queda vacío.
func (r *SaleRepo) ItemsBySale(saleID string) ([]*entity.SaleItemView, error) {
	query := `
		SELECT i.id, i.sale_id, i.product_id, i.line_no, i.quantity, i.unit_price, i.subtotal,
			COALESCE(p.name, '')
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.line_no ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItemView
	for rows.Next() {
		var v entity.SaleItemView
		err := rows.Scan(&v.ID, &v.SaleID, &v.ProductID, &v.LineNo, &v.Quantity,
			&v.UnitPrice, &v.Subtotal, &v.ProductName)
		if err != nil {
			return nil, fmt.Errorf("scan sale item row: %w", err)
		}
		items = append(items, &v)
	}
	return items, rows.Err()
}

// List lista ventas con el nombre del cliente resuelto, paginado por fecha descendente.
func (r *SaleRepo) List(limit, offset int) ([]*entity.SaleView, error) {
	query := `
		SELECT s.id, s.customer_id, s.date, s.total, c.name
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		ORDER BY s.date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var views []*entity.SaleView
	for rows.Next() {
		var v entity.SaleView
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.Date, &v.Total, &v.CustomerName); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		views = append(views, &v)
	}
	return views, rows.Err()
}

const historyQuery = `
	SELECT s.id, s.date, s.total, c.name, COALESCE(p.name, ''), i.quantity, i.unit_price, i.subtotal
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	JOIN customers c ON c.id = s.customer_id
	LEFT JOIN products p ON p.id = i.product_id`

// HistoryByCustomer lista todas las líneas vendidas a un cliente.
func (r *SaleRepo) HistoryByCustomer(customerID string) ([]*entity.SaleHistoryRow, error) {
	rows, err := r.q.Query(context.Background(),
		historyQuery+` WHERE s.customer_id = $1 ORDER BY s.date DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("history by customer: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

// HistoryByProduct lista todas las líneas que incluyen un producto.
func (r *SaleRepo) HistoryByProduct(productID string) ([]*entity.SaleHistoryRow, error) {
	rows, err := r.q.Query(context.Background(),
		historyQuery+` WHERE i.product_id = $1 ORDER BY s.date DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("history by product: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

// HistoryByPeriod lista todas las líneas vendidas en un rango de fechas (inclusivo).
func (r *SaleRepo) HistoryByPeriod(from, to time.Time) ([]*entity.SaleHistoryRow, error) {
	rows, err := r.q.Query(context.Background(),
		historyQuery+` WHERE s.date >= $1 AND s.date <= $2 ORDER BY s.date DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("history by period: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

// DeleteItemsBySale elimina las líneas de una venta (parte de la eliminación
// administrativa, dentro de la misma transacción que restaura el stock).
func (r *SaleRepo) DeleteItemsBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una venta.
func (r *SaleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanHistoryRows(rows pgx.Rows) ([]*entity.SaleHistoryRow, error) {
	var result []*entity.SaleHistoryRow
	for rows.Next() {
		var h entity.SaleHistoryRow
		err := rows.Scan(&h.SaleID, &h.Date, &h.Total, &h.CustomerName,
			&h.ProductName, &h.Quantity, &h.UnitPrice, &h.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		result = append(result, &h)
	}
	return result, rows.Err()
}
