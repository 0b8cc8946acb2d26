package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// ContactPatch actualización parcial de los datos de contacto de un cliente o
// proveedor. Solo se aplican los campos no nulos.
type ContactPatch struct {
	Name      *string
	Phone     *string
	Email     *string
	AddressID *string
}

// Empty indica que el patch no modifica ningún campo.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.AddressID == nil
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetViewByID(id string) (*entity.CustomerView, error)
	List(limit, offset int) ([]*entity.CustomerView, error)
	Patch(id string, patch ContactPatch) error
	Delete(id string) error
}
