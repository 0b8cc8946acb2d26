package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var errTestStorage = errors.New("conexión perdida")

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// memStore almacén en memoria con semántica transaccional para los tests del
// motor: el runner serializa transacciones con un mutex (equivalente al lock de
// fila del storage real para productos en conflicto) y restaura un snapshot si
// el cuerpo falla, de modo que la atomicidad sea observable.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem
	restocks  map[string]*entity.Restock

	failOn map[string]bool // operaciones que deben fallar (simula caída del storage)
	txRuns int             // transacciones iniciadas
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		items:     make(map[string][]*entity.SaleItem),
		restocks:  make(map[string]*entity.Restock),
		failOn:    make(map[string]bool),
	}
}

func (s *memStore) addProduct(id, name string, price string, qty int64) {
	s.products[id] = &entity.Product{
		ID: id, Name: name, Price: mustDecimal(price), Quantity: qty, MinStock: 1,
	}
}

func (s *memStore) addCustomer(id, name string) {
	s.customers[id] = &entity.Customer{ID: id, Name: name}
}

func (s *memStore) fail(op string, err error) error {
	if s.failOn[op] {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type snapshot struct {
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	items    map[string][]*entity.SaleItem
	restocks map[string]*entity.Restock
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		products: make(map[string]*entity.Product, len(s.products)),
		sales:    make(map[string]*entity.Sale, len(s.sales)),
		items:    make(map[string][]*entity.SaleItem, len(s.items)),
		restocks: make(map[string]*entity.Restock, len(s.restocks)),
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, v := range s.sales {
		cp := *v
		snap.sales[id] = &cp
	}
	for id, list := range s.items {
		cp := make([]*entity.SaleItem, len(list))
		for i, it := range list {
			c := *it
			cp[i] = &c
		}
		snap.items[id] = cp
	}
	for id, r := range s.restocks {
		cp := *r
		snap.restocks[id] = &cp
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.products = snap.products
	s.sales = snap.sales
	s.items = snap.items
	s.restocks = snap.restocks
}

// memTxRunner implementa sales.TxRunner sobre el memStore.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.txRuns++
	snap := r.store.snapshot()
	if err := fn(&memProductRepo{store: r.store}, &memSaleRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) RunRestock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	restockRepo repository.RestockRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.txRuns++
	snap := r.store.snapshot()
	if err := fn(&memProductRepo{store: r.store}, &memRestockRepo{store: r.store}); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ── Repositorios en memoria ───────────────────────────────────────────────────

type memProductRepo struct{ store *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (m *memProductRepo) Create(p *entity.Product) error {
	m.store.products[p.ID] = p
	return nil
}

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := m.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) GetByNameAndSupplier(name string, supplierID *string) (*entity.Product, error) {
	return nil, nil
}

func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if err := m.store.fail("get_for_update", errTestStorage); err != nil {
		return nil, err
	}
	return m.GetByID(id)
}

func (m *memProductRepo) Update(p *entity.Product) error { return nil }

func (m *memProductRepo) Patch(id string, patch repository.ProductPatch) error { return nil }

func (m *memProductRepo) AddQuantity(id string, qty int64) error {
	if err := m.store.fail("add_quantity", errTestStorage); err != nil {
		return err
	}
	m.store.products[id].Quantity += qty
	return nil
}

func (m *memProductRepo) DecrementQuantity(id string, qty int64) error {
	if err := m.store.fail("decrement_quantity", errTestStorage); err != nil {
		return err
	}
	m.store.products[id].Quantity -= qty
	return nil
}

func (m *memProductRepo) List(limit, offset int) ([]*entity.ProductView, error) { return nil, nil }

func (m *memProductRepo) SearchByName(normalized string, limit int) ([]*entity.ProductView, error) {
	return nil, nil
}

func (m *memProductRepo) ListBelowMinStock() ([]*entity.ProductView, error) { return nil, nil }

func (m *memProductRepo) Delete(id string) error {
	delete(m.store.products, id)
	return nil
}

type memSaleRepo struct{ store *memStore }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (m *memSaleRepo) Create(sale *entity.Sale) error {
	if err := m.store.fail("create_sale", errTestStorage); err != nil {
		return err
	}
	cp := *sale
	m.store.sales[sale.ID] = &cp
	return nil
}

func (m *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	if err := m.store.fail("create_item", errTestStorage); err != nil {
		return err
	}
	cp := *item
	m.store.items[item.SaleID] = append(m.store.items[item.SaleID], &cp)
	return nil
}

func (m *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := m.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (m *memSaleRepo) ItemsBySale(saleID string) ([]*entity.SaleItemView, error) {
	var views []*entity.SaleItemView
	for _, item := range m.store.items[saleID] {
		name := ""
		if p, ok := m.store.products[item.ProductID]; ok {
			name = p.Name
		}
		views = append(views, &entity.SaleItemView{SaleItem: *item, ProductName: name})
	}
	return views, nil
}

func (m *memSaleRepo) List(limit, offset int) ([]*entity.SaleView, error) { return nil, nil }

func (m *memSaleRepo) HistoryByCustomer(customerID string) ([]*entity.SaleHistoryRow, error) {
	return nil, nil
}

func (m *memSaleRepo) HistoryByProduct(productID string) ([]*entity.SaleHistoryRow, error) {
	return nil, nil
}

func (m *memSaleRepo) HistoryByPeriod(from, to time.Time) ([]*entity.SaleHistoryRow, error) {
	return nil, nil
}

func (m *memSaleRepo) DeleteItemsBySale(saleID string) error {
	delete(m.store.items, saleID)
	return nil
}

func (m *memSaleRepo) Delete(id string) error {
	delete(m.store.sales, id)
	return nil
}

type memRestockRepo struct{ store *memStore }

var _ repository.RestockRepository = (*memRestockRepo)(nil)

func (m *memRestockRepo) Create(restock *entity.Restock) error {
	if err := m.store.fail("create_restock", errTestStorage); err != nil {
		return err
	}
	cp := *restock
	m.store.restocks[restock.ID] = &cp
	return nil
}

func (m *memRestockRepo) ListByProduct(productID string) ([]*entity.Restock, error) {
	var out []*entity.Restock
	for _, r := range m.store.restocks {
		if r.ProductID == productID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memCustomerRepo lecturas de clientes para la validación previa del motor.
type memCustomerRepo struct{ store *memStore }

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func (m *memCustomerRepo) Create(c *entity.Customer) error {
	m.store.customers[c.ID] = c
	return nil
}

func (m *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := m.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomerRepo) GetViewByID(id string) (*entity.CustomerView, error) { return nil, nil }

func (m *memCustomerRepo) List(limit, offset int) ([]*entity.CustomerView, error) { return nil, nil }

func (m *memCustomerRepo) Patch(id string, patch repository.ContactPatch) error { return nil }

func (m *memCustomerRepo) Delete(id string) error {
	delete(m.store.customers, id)
	return nil
}
