package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes, con alta de dirección encadenada
// (estado → ciudad → dirección, get-or-create).
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, addressRepo repository.AddressRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, addressRepo: addressRepo}
}

// Create da de alta un cliente; si trae dirección, la resuelve primero.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	addressID, err := resolveAddress(uc.addressRepo, in.Address)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		AddressID: addressID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, customer.ID)
}

// GetByID devuelve el cliente con su dirección resuelta, o domain.ErrNotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	view, err := uc.customerRepo.GetViewByID(id)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener cliente", Err: err}
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ContactResponse{
		ID:      view.ID,
		Name:    view.Name,
		Phone:   view.Phone,
		Email:   view.Email,
		Address: toAddressResponse(view.Address),
	}, nil
}

// List lista clientes con dirección.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ContactResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	views, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ContactResponse, 0, len(views))
	for _, v := range views {
		out = append(out, &dto.ContactResponse{
			ID:      v.ID,
			Name:    v.Name,
			Phone:   v.Phone,
			Email:   v.Email,
			Address: toAddressResponse(v.Address),
		})
	}
	return out, nil
}

// Patch actualización parcial de datos de contacto.
func (uc *CustomerUseCase) Patch(ctx context.Context, id string, in dto.PatchContactRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	patch := repository.ContactPatch{Name: in.Name, Phone: in.Phone, Email: in.Email}
	if patch.Empty() {
		return domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener cliente", Err: err}
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Patch(id, patch)
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener cliente", Err: err}
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.customerRepo.Delete(id)
}
