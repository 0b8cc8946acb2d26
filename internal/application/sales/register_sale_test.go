package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/domain"
)

func newSaleFixture() (*memStore, *RegisterSaleUseCase) {
	store := newMemStore()
	runner := &memTxRunner{store: store}
	uc := NewRegisterSaleUseCase(runner, &memCustomerRepo{store: store})
	return store, uc
}

// Escenario: C1 compra {(P1, 2), (P2, 1)} con P1=10.00 stock 10 y P2=5.00 stock 3.
// Total = 25.00; P1 queda en 8 y P2 en 2.
func TestRegisterSale_Exitosa_TotalYDecremento(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)
	store.addProduct("p2", "Feijão", "5.00", 3)

	saleID, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saleID)

	sale := store.sales[saleID]
	require.NotNil(t, sale, "la cabecera debe quedar persistida")
	assert.True(t, mustDecimal("25.00").Equal(sale.Total), "total esperado 25.00, got %s", sale.Total)
	assert.Equal(t, int64(8), store.products["p1"].Quantity)
	assert.Equal(t, int64(2), store.products["p2"].Quantity)
}

// Consistencia: Total == Σ subtotales, y el precio unitario registrado es el del
// catálogo al momento de la venta (derivado por el motor, no por el caller).
func TestRegisterSale_TotalIgualSumaDeSubtotales(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "3.75", 100)
	store.addProduct("p2", "Café", "12.30", 100)
	store.addProduct("p3", "Azúcar", "4.99", 100)

	saleID, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 7},
			{ProductID: "p2", Quantity: 3},
			{ProductID: "p3", Quantity: 11},
		},
	})
	require.NoError(t, err)

	items := store.items[saleID]
	require.Len(t, items, 3)
	sum := mustDecimal("0")
	for _, item := range items {
		expected := store.products[item.ProductID].Price
		assert.True(t, expected.Equal(item.UnitPrice), "precio unitario derivado del catálogo")
		assert.True(t, item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Equal(item.Subtotal))
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, sum.Equal(store.sales[saleID].Total), "Total == Σ subtotales")
}

// Lectura inmediata después de registrar: los ítems devueltos son exactamente
// los solicitados, con cantidades y subtotales correctos.
func TestRegisterSale_LecturaTrasEscritura(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)

	saleID, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items:      []SaleItemInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	queries := NewSaleQueryUseCase(&memSaleRepo{store: store})
	sale, items, err := queries.GetSale(context.Background(), saleID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "Arroz", items[0].ProductName)
	assert.Equal(t, int64(4), items[0].Quantity)
	assert.True(t, mustDecimal("40.00").Equal(items[0].Subtotal))
	assert.True(t, sale.Total.Equal(items[0].Subtotal))
}

// Escenario: P2 sin stock. Falla con InsufficientStock(P2, disponible=0,
// solicitado=1); P1 conserva sus 10 unidades y no se crea ninguna venta.
func TestRegisterSale_StockInsuficiente_AbortaLoteCompleto(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)
	store.addProduct("p2", "Feijão", "5.00", 0)

	_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Feijão", stockErr.ProductName)
	assert.Equal(t, int64(0), stockErr.Available)
	assert.Equal(t, int64(1), stockErr.Requested)

	assert.Equal(t, int64(10), store.products["p1"].Quantity, "sin decremento parcial")
	assert.Empty(t, store.sales, "sin cabecera")
	assert.Empty(t, store.items, "sin ítems")
}

// Atomicidad para todo k: si el ítem k de N es el inválido, nada queda
// persistido, sea cual sea su posición en el lote.
func TestRegisterSale_Atomicidad_ItemInvalidoEnCualquierPosicion(t *testing.T) {
	const n = 3
	for k := 0; k < n; k++ {
		t.Run(fmt.Sprintf("item_%d_de_%d", k+1, n), func(t *testing.T) {
			store, uc := newSaleFixture()
			store.addCustomer("c1", "Maria")
			items := make([]SaleItemInput, n)
			for i := 0; i < n; i++ {
				id := fmt.Sprintf("p%d", i)
				if i == k {
					store.addProduct(id, "Agotado", "1.00", 0)
				} else {
					store.addProduct(id, "Disponible", "1.00", 50)
				}
				items[i] = SaleItemInput{ProductID: id, Quantity: 5}
			}

			_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{CustomerID: "c1", Items: items})
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			for i := 0; i < n; i++ {
				p := store.products[fmt.Sprintf("p%d", i)]
				if i == k {
					assert.Equal(t, int64(0), p.Quantity)
				} else {
					assert.Equal(t, int64(50), p.Quantity, "ítem %d no debe decrementarse", i)
				}
			}
			assert.Empty(t, store.sales)
		})
	}
}

func TestRegisterSale_ProductoInexistente(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)

	_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "no-existe", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-existe", notFound.ProductID)
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Empty(t, store.sales)
}

// Entradas inválidas se rechazan antes de abrir transacción alguna.
func TestRegisterSale_EntradaInvalida_SinTransaccion(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)

	cases := []struct {
		name string
		in   RegisterSaleInput
	}{
		{"sin items", RegisterSaleInput{CustomerID: "c1"}},
		{"cantidad cero", RegisterSaleInput{CustomerID: "c1", Items: []SaleItemInput{{ProductID: "p1", Quantity: 0}}}},
		{"cantidad negativa", RegisterSaleInput{CustomerID: "c1", Items: []SaleItemInput{{ProductID: "p1", Quantity: -3}}}},
		{"sin cliente", RegisterSaleInput{Items: []SaleItemInput{{ProductID: "p1", Quantity: 1}}}},
		{"cliente inexistente", RegisterSaleInput{CustomerID: "fantasma", Items: []SaleItemInput{{ProductID: "p1", Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterSale(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, store.txRuns, "ninguna validación previa debe tomar locks")
}

// Falla del storage a mitad de la transacción: rollback total y StorageError.
func TestRegisterSale_FallaDeStorage_RollbackTotal(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)
	store.addProduct("p2", "Feijão", "5.00", 5)
	store.failOn["create_item"] = true

	_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.Error(t, err)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, errTestStorage)

	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Equal(t, int64(5), store.products["p2"].Quantity)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Exclusión mutua bajo contención: stock 5, dos solicitudes concurrentes de 3.
// Exactamente una gana; la otra observa stock insuficiente. Nunca ganan ambas.
func TestRegisterSale_ContencionMismoProducto_UnSoloGanador(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addCustomer("c2", "João")
	store.addProduct("p1", "Arroz", "10.00", 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, customerID := range []string{"c1", "c2"} {
		wg.Add(1)
		go func(i int, customerID string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterSale(context.Background(), RegisterSaleInput{
				CustomerID: customerID,
				Items:      []SaleItemInput{{ProductID: "p1", Quantity: 3}},
			})
		}(i, customerID)
	}
	wg.Wait()

	winners, losers := 0, 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		losers++
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		// Según el orden de serialización el perdedor ve 5 (si validó antes del
		// commit ganador nunca pasa, por el lock) o el remanente 2.
		assert.Equal(t, int64(2), stockErr.Available)
		assert.Equal(t, int64(3), stockErr.Requested)
	}
	assert.Equal(t, 1, winners, "exactamente una venta debe ganar")
	assert.Equal(t, 1, losers)
	assert.Equal(t, int64(2), store.products["p1"].Quantity)
}

// Carga concurrente: stock 20, 50 solicitudes de 1 unidad. Ganan exactamente 20
// y el stock nunca baja de cero.
func TestRegisterSale_ContencionMasiva_SinSobreventa(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 20)

	const requests = 50
	var success, fail atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
				CustomerID: "c1",
				Items:      []SaleItemInput{{ProductID: "p1", Quantity: 1}},
			})
			if err == nil {
				success.Add(1)
				return
			}
			if errors.Is(err, domain.ErrInsufficientStock) {
				fail.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), success.Load())
	assert.Equal(t, int32(requests-20), fail.Load())
	assert.Equal(t, int64(0), store.products["p1"].Quantity, "quantity >= 0 siempre")
	assert.Len(t, store.sales, 20)
}

// Ventas sobre productos disjuntos no se estorban: ambas ganan.
func TestRegisterSale_ProductosDisjuntos_AmbasGanan(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addCustomer("c2", "João")
	store.addProduct("p1", "Arroz", "10.00", 3)
	store.addProduct("p2", "Feijão", "5.00", 3)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, productID := range []string{"p1", "p2"} {
		wg.Add(1)
		go func(i int, productID string) {
			defer wg.Done()
			_, errs[i] = uc.RegisterSale(context.Background(), RegisterSaleInput{
				CustomerID: "c1",
				Items:      []SaleItemInput{{ProductID: productID, Quantity: 3}},
			})
		}(i, productID)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(0), store.products["p1"].Quantity)
	assert.Equal(t, int64(0), store.products["p2"].Quantity)
}

// Líneas duplicadas del mismo producto: la validación acumula lo ya reclamado
// dentro del lote. Con stock 5, {(P1, 3), (P1, 3)} falla en la segunda línea
// con disponible=2 (5 menos los 3 ya reclamados) y no persiste nada.
func TestRegisterSale_LineasDuplicadas_ValidaStockAcumulado(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Feijão", "5.00", 5)

	_, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Feijão", stockErr.ProductName)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(3), stockErr.Requested)

	assert.Equal(t, int64(5), store.products["p1"].Quantity, "el stock nunca queda negativo")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
}

// Líneas duplicadas que sí caben en el stock: ambas se registran como líneas
// separadas y el decremento es la suma de las dos.
func TestRegisterSale_LineasDuplicadas_DentroDelStock(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)

	saleID, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), store.products["p1"].Quantity)
	require.Len(t, store.items[saleID], 2)
	assert.True(t, mustDecimal("70.00").Equal(store.sales[saleID].Total))
}

// Cada línea lleva su posición dentro de la venta (1..N, orden de la
// solicitud); los IDs son UUID y no definen un orden estable.
func TestRegisterSale_LineNoSigueOrdenDeLaSolicitud(t *testing.T) {
	store, uc := newSaleFixture()
	store.addCustomer("c1", "Maria")
	store.addProduct("p1", "Arroz", "10.00", 10)
	store.addProduct("p2", "Café", "12.30", 10)
	store.addProduct("p3", "Azúcar", "4.99", 10)

	saleID, err := uc.RegisterSale(context.Background(), RegisterSaleInput{
		CustomerID: "c1",
		Items: []SaleItemInput{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p3", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
	})
	require.NoError(t, err)

	items := store.items[saleID]
	require.Len(t, items, 3)
	for i, productID := range []string{"p2", "p3", "p1"} {
		assert.Equal(t, i+1, items[i].LineNo)
		assert.Equal(t, productID, items[i].ProductID)
	}
}
