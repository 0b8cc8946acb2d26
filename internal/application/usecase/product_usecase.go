package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/pkg/normalize"
)

// ProductUseCase CRUD y consultas del catálogo de productos. El stock NO se
// modifica por acá: solo el motor de ventas (decremento) y las entradas de
// mercancía (incremento) lo tocan.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto. Rechaza duplicados por (nombre, proveedor).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByNameAndSupplier(in.Name, in.SupplierID)
	if err != nil {
		return nil, &domain.StorageError{Op: "buscar producto", Err: err}
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Category:   in.Category,
		Price:      in.Price,
		Quantity:   in.Quantity,
		SupplierID: in.SupplierID,
		MinStock:   in.MinStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if product.MinStock == 0 {
		product.MinStock = 1
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(&entity.ProductView{Product: *product}), nil
}

// GetByID devuelve un producto o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener producto", Err: err}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(&entity.ProductView{Product: *product}), nil
}

// Update reemplaza todos los campos editables del producto (la cantidad no:
// esa pertenece al motor de ventas y a las entradas).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) error {
	if id == "" || in.Name == "" || in.Price.IsNegative() || in.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener producto", Err: err}
	}
	if product == nil {
		return domain.ErrNotFound
	}
	product.Name = in.Name
	product.Category = in.Category
	product.Price = in.Price
	product.SupplierID = in.SupplierID
	product.MinStock = in.MinStock
	product.UpdatedAt = time.Now()
	return uc.productRepo.Update(product)
}

// Patch aplica una actualización parcial uniforme: solo los campos presentes.
func (uc *ProductUseCase) Patch(ctx context.Context, id string, in dto.PatchProductRequest) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	patch := repository.ProductPatch{
		Name:       in.Name,
		Category:   in.Category,
		Price:      in.Price,
		SupplierID: in.SupplierID,
		MinStock:   in.MinStock,
	}
	if patch.Empty() {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener producto", Err: err}
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Patch(id, patch)
}

// List lista el catálogo con el nombre del proveedor.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	views, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(views), nil
}

// Search busca por nombre sin distinguir acentos ni mayúsculas.
func (uc *ProductUseCase) Search(ctx context.Context, query string, limit int) ([]*dto.ProductResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	views, err := uc.productRepo.SearchByName(normalize.Fold(query), limit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(views), nil
}

// LowStock productos por debajo de su umbral mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]*dto.ProductResponse, error) {
	views, err := uc.productRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	return toProductResponses(views), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return &domain.StorageError{Op: "obtener producto", Err: err}
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(v *entity.ProductView) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           v.ID,
		Name:         v.Name,
		Category:     v.Category,
		Price:        v.Price,
		Quantity:     v.Quantity,
		SupplierID:   v.SupplierID,
		SupplierName: v.SupplierName,
		MinStock:     v.MinStock,
		BelowMin:     v.BelowMinStock(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toProductResponses(views []*entity.ProductView) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toProductResponse(v))
	}
	return out
}
