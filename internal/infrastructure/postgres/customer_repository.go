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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO customers (id, name, phone, email, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.AddressID, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, email, address_id, created_at, updated_at
		FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.AddressID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// GetViewByID obtiene un cliente con su dirección resuelta. Devuelve nil si no existe.
func (r *CustomerRepo) GetViewByID(id string) (*entity.CustomerView, error) {
	rows, err := r.q.Query(context.Background(),
		contactViewQuery("customers")+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get customer view: %w", err)
	}
	defer rows.Close()

	views, err := scanCustomerViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return views[0], nil
}

// List lista clientes con dirección resuelta, paginado por nombre.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.CustomerView, error) {
	rows, err := r.q.Query(context.Background(),
		contactViewQuery("customers")+` ORDER BY t.name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	return scanCustomerViews(rows)
}

// Patch aplica una actualización parcial de los datos de contacto.
func (r *CustomerRepo) Patch(id string, patch repository.ContactPatch) error {
	clause, args := buildContactPatch(patch)
	if clause == "" {
		return nil
	}
	query := `UPDATE customers SET ` + clause + `, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("patch customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. Falla con FK si el cliente tiene ventas registradas.
func (r *CustomerRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomerViews(rows pgx.Rows) ([]*entity.CustomerView, error) {
	var views []*entity.CustomerView
	for rows.Next() {
		var v entity.CustomerView
		addr, err := scanContactRow(rows,
			&v.ID, &v.Name, &v.Phone, &v.Email, &v.AddressID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		v.Address = addr
		views = append(views, &v)
	}
	return views, rows.Err()
}
