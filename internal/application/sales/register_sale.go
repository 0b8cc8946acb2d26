package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// RegisterSaleUseCase registra una venta multi-ítem en una sola transacción:
// bloqueo de fila por producto (SELECT FOR UPDATE) en el orden solicitado,
// validación de stock, cabecera + ítems y decremento de inventario.
// Dos ventas concurrentes sobre las últimas N unidades de un producto no pueden
// ganar ambas: exactamente una observa stock insuficiente.
type RegisterSaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{txRunner: txRunner, customerRepo: customerRepo}
}

// SaleItemInput un (producto, cantidad) solicitado. El precio unitario NO viene
// del caller: lo observa el motor al validar, para que un precio viejo o
// manipulado nunca quede registrado.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
}

// RegisterSaleInput entrada del registro de venta.
type RegisterSaleInput struct {
	CustomerID string
	Items      []SaleItemInput
}

// RegisterSale valida la entrada antes de tomar ningún lock, ejecuta el cuerpo
// atómico dentro de la tx y devuelve el ID de la venta creada.
//
// Fallas y su semántica:
//   - domain.ErrInvalidInput: lista vacía, cantidad <= 0 o cliente inexistente.
//   - *domain.ProductNotFoundError / *domain.InsufficientStockError: cualquier
//     ítem inválido aborta el lote completo, aunque los demás sean válidos.
//   - *domain.StorageError: falla de conexión o constraint, tras rollback.
//
// Ningún camino de error deja cabecera, ítems ni decrementos persistidos.
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, in RegisterSaleInput) (string, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return "", domain.ErrInvalidInput
		}
	}

	// Cliente inexistente se rechaza antes de abrir la tx y tomar locks
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return "", &domain.StorageError{Op: "validar cliente", Err: err}
	}
	if customer == nil {
		return "", domain.ErrInvalidInput
	}

	now := time.Now()
	saleID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Bloquear y validar cada producto en el orden solicitado,
		// capturando el precio unitario observado por el motor. Un mismo
		// producto puede aparecer en varias líneas: cada línea valida contra
		// el stock que le queda después de las unidades ya comprometidas por
		// las líneas anteriores, nunca contra la lectura cruda.
		prices := make([]decimal.Decimal, len(in.Items))
		claimed := make(map[string]int64, len(in.Items))
		total := decimal.Zero
		for i, item := range in.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			available := product.Quantity - claimed[item.ProductID]
			if available < item.Quantity {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					Available:   available,
					Requested:   item.Quantity,
				}
			}
			claimed[item.ProductID] += item.Quantity
			prices[i] = product.Price
			total = total.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
		}

		// 2) Cabecera con el total calculado
		if err := saleRepo.Create(&entity.Sale{
			ID:         saleID,
			CustomerID: in.CustomerID,
			Date:       now,
			Total:      total,
		}); err != nil {
			return err
		}

		// 3) Ítems + decremento de stock, en lockstep
		for i, item := range in.Items {
			subtotal := prices[i].Mul(decimal.NewFromInt(item.Quantity))
			if err := saleRepo.CreateItem(&entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				LineNo:    i + 1,
				Quantity:  item.Quantity,
				UnitPrice: prices[i],
				Subtotal:  subtotal,
			}); err != nil {
				return err
			}
			if err := productRepo.DecrementQuantity(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", classify(err, "registrar venta")
	}
	return saleID, nil
}

// classify deja pasar los errores de dominio tal cual y envuelve el resto como
// StorageError (falla del storage tras rollback garantizado).
func classify(err error, op string) error {
	var notFound *domain.ProductNotFoundError
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &notFound),
		errors.As(err, &insufficient),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound):
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}
