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

// SupplierUseCase CRUD de proveedores, misma mecánica de dirección que clientes.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	addressRepo  repository.AddressRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, addressRepo repository.AddressRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, addressRepo: addressRepo}
}

// Create da de alta un proveedor; si trae dirección, la resuelve primero.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	addressID, err := resolveAddress(uc.addressRepo, in.Address)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		AddressID: addressID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, supplier.ID)
}

// GetByID devuelve el proveedor con su dirección resuelta, o domain.ErrNotFound.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	view, err := uc.supplierRepo.GetViewByID(id)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener proveedor", Err: err}
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

// List lista proveedores con dirección.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ContactResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	views, err := uc.supplierRepo.List(limit, offset)
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
func (uc *SupplierUseCase) Patch(ctx context.Context, id string, in dto.PatchContactRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	patch := repository.ContactPatch{Name: in.Name, Phone: in.Phone, Email: in.Email}
	if patch.Empty() {
		return domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener proveedor", Err: err}
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Patch(id, patch)
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener proveedor", Err: err}
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(id)
}
