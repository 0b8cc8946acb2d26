package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO suppliers (id, name, phone, email, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		supplier.ID, supplier.Name, supplier.Phone, supplier.Email,
		supplier.AddressID, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, address_id, created_at, updated_at
		FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Phone, &s.Email, &s.AddressID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// GetViewByID obtiene un proveedor con su dirección resuelta. Devuelve nil si no existe.
func (r *SupplierRepo) GetViewByID(id string) (*entity.SupplierView, error) {
	rows, err := r.q.Query(context.Background(),
		contactViewQuery("suppliers")+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get supplier view: %w", err)
	}
	defer rows.Close()

	views, err := scanSupplierViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return views[0], nil
}

// List lista proveedores con dirección resuelta, paginado por nombre.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.SupplierView, error) {
	rows, err := r.q.Query(context.Background(),
		contactViewQuery("suppliers")+` ORDER BY t.name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	return scanSupplierViews(rows)
}

// Patch aplica una actualización parcial de los datos de contacto.
func (r *SupplierRepo) Patch(id string, patch repository.ContactPatch) error {
	clause, args := buildContactPatch(patch)
	if clause == "" {
		return nil
	}
	query := `UPDATE suppliers SET ` + clause + `, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("patch supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor. Los productos que lo referencian quedan con
// supplier_id en NULL (FK ON DELETE SET NULL).
func (r *SupplierRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSupplierViews(rows pgx.Rows) ([]*entity.SupplierView, error) {
	var views []*entity.SupplierView
	for rows.Next() {
		var v entity.SupplierView
		addr, err := scanContactRow(rows,
			&v.ID, &v.Name, &v.Phone, &v.Email, &v.AddressID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan supplier row: %w", err)
		}
		v.Address = addr
		views = append(views, &v)
	}
	return views, rows.Err()
}
