package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// AddressRepository define el puerto de persistencia para la cadena
// estado → ciudad → dirección.
type AddressRepository interface {
	ListStates() ([]*entity.State, error)
	GetStateByName(name string) (*entity.State, error)
	CreateState(state *entity.State) error
	ListCitiesByState(stateID string) ([]*entity.City, error)
	GetCityByNameAndState(name, stateID string) (*entity.City, error)
	CreateCity(city *entity.City) error
	CreateAddress(address *entity.Address) error
	GetAddressView(id string) (*entity.AddressView, error)
	UpdateAddress(address *entity.Address) error
}
