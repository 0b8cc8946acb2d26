package sales

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// ReceiptGenerator puerto para la generación del recibo de venta en PDF.
type ReceiptGenerator interface {
	GenerateSaleReceipt(
		ctx context.Context,
		sale *entity.Sale,
		customer *entity.CustomerView,
		items []*entity.SaleItemView,
	) ([]byte, error)
}

// ReceiptUseCase arma el recibo de una venta registrada: cabecera, cliente con
// dirección resuelta y líneas con nombre de producto.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso de recibos.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, customerRepo: customerRepo, generator: generator}
}

// Generate devuelve los bytes del PDF del recibo de la venta.
func (uc *ReceiptUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener venta", Err: err}
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetViewByID(sale.CustomerID)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener cliente", Err: err}
	}
	items, err := uc.saleRepo.ItemsBySale(saleID)
	if err != nil {
		return nil, &domain.StorageError{Op: "obtener ítems de venta", Err: err}
	}
	return uc.generator.GenerateSaleReceipt(ctx, sale, customer, items)
}
