package sales

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// DeleteSaleUseCase elimina una venta y restaura el stock decrementado por sus
// ítems, en una sola transacción. La restauración bloquea cada fila de producto
// antes de incrementarla, igual que el registro.
type DeleteSaleUseCase struct {
	txRunner TxRunner
}

// NewDeleteSaleUseCase construye el caso de uso.
func NewDeleteSaleUseCase(txRunner TxRunner) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{txRunner: txRunner}
}

// DeleteSale elimina la venta indicada. Retorna domain.ErrNotFound si no existe.
// Si algún producto de los ítems ya fue eliminado del catálogo, su restauración
// se omite; el resto de la venta se elimina igual.
func (uc *DeleteSaleUseCase) DeleteSale(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		items, err := saleRepo.ItemsBySale(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue // producto eliminado del catálogo: nada que restaurar
			}
			if err := productRepo.AddQuantity(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItemsBySale(saleID); err != nil {
			return err
		}
		return saleRepo.Delete(saleID)
	})
	if err != nil {
		return classify(err, "eliminar venta")
	}
	return nil
}
