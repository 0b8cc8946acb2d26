package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// RestockUseCase registra una entrada de mercancía: incrementa el stock del
// producto y persiste el registro de entrada en la misma transacción, con la
// fila del producto bloqueada. restockRepo (atado al pool) cubre las consultas
// fuera de transacción.
type RestockUseCase struct {
	txRunner    TxRunner
	restockRepo repository.RestockRepository
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(txRunner TxRunner, restockRepo repository.RestockRepository) *RestockUseCase {
	return &RestockUseCase{txRunner: txRunner, restockRepo: restockRepo}
}

// ListByProduct lista las entradas registradas de un producto.
func (uc *RestockUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Restock, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.restockRepo.ListByProduct(productID)
}

// RestockInput entrada de mercancía para un producto.
type RestockInput struct {
	ProductID     string
	Quantity      int64
	PurchasePrice decimal.Decimal
}

// RegisterRestock valida la entrada, incrementa el stock y deja el registro.
func (uc *RestockUseCase) RegisterRestock(ctx context.Context, in RestockInput) (string, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.PurchasePrice.IsNegative() {
		return "", domain.ErrInvalidInput
	}

	restockID := uuid.New().String()
	now := time.Now()

	err := uc.txRunner.RunRestock(ctx, func(
		productRepo repository.ProductRepository,
		restockRepo repository.RestockRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{ProductID: in.ProductID}
		}
		if err := restockRepo.Create(&entity.Restock{
			ID:            restockID,
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			PurchasePrice: in.PurchasePrice,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		return productRepo.AddQuantity(in.ProductID, in.Quantity)
	})
	if err != nil {
		return "", classify(err, "registrar entrada")
	}
	return restockID, nil
}
