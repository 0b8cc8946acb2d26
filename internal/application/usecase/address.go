package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// AddressUseCase consultas de estados y ciudades (catálogos para formularios).
type AddressUseCase struct {
	addressRepo repository.AddressRepository
}

// NewAddressUseCase construye el caso de uso.
func NewAddressUseCase(addressRepo repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addressRepo: addressRepo}
}

// ListStates lista todos los estados registrados.
func (uc *AddressUseCase) ListStates(ctx context.Context) ([]*dto.StateResponse, error) {
	states, err := uc.addressRepo.ListStates()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StateResponse, 0, len(states))
	for _, s := range states {
		out = append(out, &dto.StateResponse{ID: s.ID, Name: s.Name, Code: s.Code})
	}
	return out, nil
}

// ListCities lista las ciudades de un estado.
func (uc *AddressUseCase) ListCities(ctx context.Context, stateID string) ([]*dto.CityResponse, error) {
	if stateID == "" {
		return nil, domain.ErrInvalidInput
	}
	cities, err := uc.addressRepo.ListCitiesByState(stateID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, &dto.CityResponse{ID: c.ID, Name: c.Name, StateID: c.StateID})
	}
	return out, nil
}

// resolveAddress crea la dirección de un contacto resolviendo estado y ciudad
// con get-or-create por nombre. La sigla del estado es obligatoria solo al
// crear un estado nuevo.
func resolveAddress(addressRepo repository.AddressRepository, in *dto.AddressInput) (*string, error) {
	if in == nil {
		return nil, nil
	}
	if in.Street == "" || in.City == "" || in.State == "" {
		return nil, domain.ErrInvalidInput
	}

	state, err := addressRepo.GetStateByName(in.State)
	if err != nil {
		return nil, &domain.StorageError{Op: "buscar estado", Err: err}
	}
	if state == nil {
		if in.StateCode == "" {
			return nil, domain.ErrInvalidInput // sigla obligatoria para estado nuevo
		}
		state = &entity.State{ID: uuid.New().String(), Name: in.State, Code: in.StateCode}
		if err := addressRepo.CreateState(state); err != nil {
			return nil, err
		}
	}

	city, err := addressRepo.GetCityByNameAndState(in.City, state.ID)
	if err != nil {
		return nil, &domain.StorageError{Op: "buscar ciudad", Err: err}
	}
	if city == nil {
		city = &entity.City{ID: uuid.New().String(), Name: in.City, StateID: state.ID}
		if err := addressRepo.CreateCity(city); err != nil {
			return nil, err
		}
	}

	address := &entity.Address{
		ID:       uuid.New().String(),
		Street:   in.Street,
		Number:   in.Number,
		District: in.District,
		ZipCode:  in.ZipCode,
		CityID:   city.ID,
	}
	if err := addressRepo.CreateAddress(address); err != nil {
		return nil, err
	}
	return &address.ID, nil
}

func toAddressResponse(v *entity.AddressView) *dto.AddressResponse {
	if v == nil {
		return nil
	}
	return &dto.AddressResponse{
		ID:        v.ID,
		Street:    v.Street,
		Number:    v.Number,
		District:  v.District,
		ZipCode:   v.ZipCode,
		City:      v.CityName,
		State:     v.StateName,
		StateCode: v.StateCode,
	}
}
