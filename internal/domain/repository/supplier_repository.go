package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetViewByID(id string) (*entity.SupplierView, error)
	List(limit, offset int) ([]*entity.SupplierView, error)
	Patch(id string, patch ContactPatch) error
	Delete(id string) error
}
