package sales

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de solo lectura sobre ventas: detalle, listado e
// historiales (por cliente, por producto, por período).
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleQueryUseCase construye el caso de uso con un repositorio atado al pool.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo}
}

// GetSale devuelve la cabecera y los ítems de una venta. Inmediatamente después
// de RegisterSale, los ítems devueltos son exactamente los solicitados.
func (uc *SaleQueryUseCase) GetSale(ctx context.Context, saleID string) (*entity.Sale, []*entity.SaleItemView, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "obtener venta", Err: err}
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ItemsBySale(saleID)
	if err != nil {
		return nil, nil, &domain.StorageError{Op: "obtener ítems de venta", Err: err}
	}
	return sale, items, nil
}

// List devuelve las ventas más recientes con el nombre del cliente.
func (uc *SaleQueryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.SaleView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.List(limit, offset)
}

// HistoryByCustomer historial de ventas de un cliente, más reciente primero.
func (uc *SaleQueryUseCase) HistoryByCustomer(ctx context.Context, customerID string) ([]*entity.SaleHistoryRow, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.HistoryByCustomer(customerID)
}

// HistoryByProduct historial de ventas de un producto, más reciente primero.
func (uc *SaleQueryUseCase) HistoryByProduct(ctx context.Context, productID string) ([]*entity.SaleHistoryRow, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.HistoryByProduct(productID)
}

// HistoryByPeriod historial de ventas en [from, to].
func (uc *SaleQueryUseCase) HistoryByPeriod(ctx context.Context, from, to time.Time) ([]*entity.SaleHistoryRow, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.HistoryByPeriod(from, to)
}
