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

var _ repository.AddressRepository = (*AddressRepo)(nil)

// AddressRepo implementación del puerto AddressRepository sobre PostgreSQL.
// Cubre la cadena estado → ciudad → dirección con semántica get-or-create en
// la capa de aplicación.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador de persistencia para direcciones.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// ListStates lista todos los estados ordenados por nombre.
func (r *AddressRepo) ListStates() ([]*entity.State, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, code FROM states ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	var states []*entity.State
	for rows.Next() {
		var s entity.State
		if err := rows.Scan(&s.ID, &s.Name, &s.Code); err != nil {
			return nil, fmt.Errorf("scan state row: %w", err)
		}
		states = append(states, &s)
	}
	return states, rows.Err()
}

// GetStateByName obtiene un estado por nombre. Devuelve nil si no existe.
func (r *AddressRepo) GetStateByName(name string) (*entity.State, error) {
	var s entity.State
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, code FROM states WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &s, nil
}

// CreateState persiste un nuevo estado.
func (r *AddressRepo) CreateState(state *entity.State) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO states (id, name, code) VALUES ($1, $2, $3)`,
		state.ID, state.Name, state.Code,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert state: %w", err)
	}
	return nil
}

// ListCitiesByState lista las ciudades de un estado ordenadas por nombre.
func (r *AddressRepo) ListCitiesByState(stateID string) ([]*entity.City, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, state_id FROM cities WHERE state_id = $1 ORDER BY name ASC`, stateID)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var cities []*entity.City
	for rows.Next() {
		var c entity.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, fmt.Errorf("scan city row: %w", err)
		}
		cities = append(cities, &c)
	}
	return cities, rows.Err()
}

// GetCityByNameAndState obtiene una ciudad por nombre dentro de un estado. Devuelve nil si no existe.
func (r *AddressRepo) GetCityByNameAndState(name, stateID string) (*entity.City, error) {
	var c entity.City
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, state_id FROM cities WHERE name = $1 AND state_id = $2`,
		name, stateID,
	).Scan(&c.ID, &c.Name, &c.StateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city: %w", err)
	}
	return &c, nil
}

// CreateCity persiste una nueva ciudad.
func (r *AddressRepo) CreateCity(city *entity.City) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO cities (id, name, state_id) VALUES ($1, $2, $3)`,
		city.ID, city.Name, city.StateID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}

// CreateAddress persiste una nueva dirección.
func (r *AddressRepo) CreateAddress(address *entity.Address) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO addresses (id, street, number, district, zip_code, city_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		address.ID, address.Street, address.Number, address.District,
		address.ZipCode, address.CityID,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetAddressView obtiene una dirección con ciudad y estado resueltos. Devuelve nil si no existe.
func (r *AddressRepo) GetAddressView(id string) (*entity.AddressView, error) {
	query := `
		SELECT a.id, a.street, a.number, a.district, a.zip_code, a.city_id,
			c.name, s.name, s.code
		FROM addresses a
		JOIN cities c ON c.id = a.city_id
		JOIN states s ON s.id = c.state_id
		WHERE a.id = $1`
	var v entity.AddressView
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Street, &v.Number, &v.District, &v.ZipCode, &v.CityID,
		&v.CityName, &v.StateName, &v.StateCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &v, nil
}

// UpdateAddress actualiza una dirección existente.
func (r *AddressRepo) UpdateAddress(address *entity.Address) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE addresses SET street = $2, number = $3, district = $4, zip_code = $5, city_id = $6
		WHERE id = $1`,
		address.ID, address.Street, address.Number, address.District,
		address.ZipCode, address.CityID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
