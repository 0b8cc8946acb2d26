package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/domain"
)

func TestRegisterRestock_IncrementaStockYDejaRegistro(t *testing.T) {
	store, _ := newSaleFixture()
	store.addProduct("p1", "Arroz", "10.00", 4)
	uc := NewRestockUseCase(&memTxRunner{store: store}, &memRestockRepo{store: store})

	restockID, err := uc.RegisterRestock(context.Background(), RestockInput{
		ProductID:     "p1",
		Quantity:      6,
		PurchasePrice: mustDecimal("7.50"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, restockID)

	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	restock := store.restocks[restockID]
	require.NotNil(t, restock)
	assert.Equal(t, int64(6), restock.Quantity)
	assert.True(t, mustDecimal("7.50").Equal(restock.PurchasePrice))
}

func TestRegisterRestock_EntradaInvalida(t *testing.T) {
	store, _ := newSaleFixture()
	store.addProduct("p1", "Arroz", "10.00", 4)
	uc := NewRestockUseCase(&memTxRunner{store: store}, &memRestockRepo{store: store})

	_, err := uc.RegisterRestock(context.Background(), RestockInput{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterRestock(context.Background(), RestockInput{
		ProductID: "p1", Quantity: 5, PurchasePrice: mustDecimal("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(4), store.products["p1"].Quantity)
}

func TestRegisterRestock_ProductoInexistente(t *testing.T) {
	store, _ := newSaleFixture()
	uc := NewRestockUseCase(&memTxRunner{store: store}, &memRestockRepo{store: store})

	_, err := uc.RegisterRestock(context.Background(), RestockInput{
		ProductID: "no-existe", Quantity: 5, PurchasePrice: mustDecimal("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, store.restocks)
}

// Falla al persistir la entrada: el incremento de stock no sobrevive.
func TestRegisterRestock_FallaDeStorage_RollbackTotal(t *testing.T) {
	store, _ := newSaleFixture()
	store.addProduct("p1", "Arroz", "10.00", 4)
	store.failOn["create_restock"] = true
	uc := NewRestockUseCase(&memTxRunner{store: store}, &memRestockRepo{store: store})

	_, err := uc.RegisterRestock(context.Background(), RestockInput{
		ProductID: "p1", Quantity: 6, PurchasePrice: mustDecimal("7.50"),
	})
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, int64(4), store.products["p1"].Quantity)
	assert.Empty(t, store.restocks)
}
