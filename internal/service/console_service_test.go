package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"
	"go-store-console/internal/repository"
	"go-store-console/internal/router"
	"go-store-console/internal/view"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu sync.Mutex

	products  []model.Product
	customers []model.Customer
	sales     []model.Sale
	dashboard model.Dashboard

	failLoads    error
	saleErr      error
	writeErr     error
	logoutErr    error
	saleRequests []model.SaleRequest
	saleStarted  chan struct{}
	saleRelease  chan struct{}
	created      []model.ProductInput
	updated      map[int64]model.ProductInput
	deleted      []int64
	customersN   int
	calls        map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: []model.Product{
			{ID: 1, Name: "Coffee Beans", Category: "Pantry", Price: 10, CostPrice: 6, StockQuantity: 5},
			{ID: 2, Name: "Green Tea", Category: "Drinks", Price: 5, CostPrice: 2, StockQuantity: 3},
			{ID: 3, Name: "Sold Out Mug", Category: "Home", Price: 8, CostPrice: 0, StockQuantity: 0},
		},
		customers: []model.Customer{{ID: 7, Name: "Ana", Email: "ana@example.com"}},
		dashboard: model.Dashboard{TotalProducts: 3, LowStock: 2, TodaySales: 12.5},
		updated:   map[int64]model.ProductInput{},
		calls:     map[string]int{},
	}
}

func (f *fakeStore) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeStore) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) Logout(ctx context.Context) error {
	f.hit("logout")
	return f.logoutErr
}

func (f *fakeStore) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	f.hit("dashboard")
	if f.failLoads != nil {
		return nil, f.failLoads
	}
	d := f.dashboard
	return &d, nil
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	f.hit("products")
	if f.failLoads != nil {
		return nil, f.failLoads
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Product(nil), f.products...), nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, input model.ProductInput) (*model.APIResult, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	f.created = append(f.created, input)
	f.mu.Unlock()
	return &model.APIResult{Success: true, Message: "Product added successfully"}, nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.APIResult, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	f.updated[id] = input
	f.mu.Unlock()
	return &model.APIResult{Success: true, Message: "Product updated successfully"}, nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id int64) (*model.APIResult, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return &model.APIResult{Success: true, Message: "Product deleted successfully"}, nil
}

func (f *fakeStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	f.hit("customers")
	if f.failLoads != nil {
		return nil, f.failLoads
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Customer(nil), f.customers...), nil
}

func (f *fakeStore) CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.APIResult, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	f.customersN++
	f.customers = append(f.customers, model.Customer{ID: int64(100 + f.customersN), Name: input.Name})
	f.mu.Unlock()
	return &model.APIResult{Success: true, Message: "Customer added successfully"}, nil
}

func (f *fakeStore) ListSales(ctx context.Context) ([]model.Sale, error) {
	f.hit("sales")
	if f.failLoads != nil {
		return nil, f.failLoads
	}
	return f.sales, nil
}

func (f *fakeStore) ProcessSale(ctx context.Context, req model.SaleRequest) (*model.SaleResult, error) {
	f.mu.Lock()
	f.saleRequests = append(f.saleRequests, req)
	f.mu.Unlock()
	if f.saleStarted != nil {
		f.saleStarted <- struct{}{}
		<-f.saleRelease
	}
	if f.saleErr != nil {
		return nil, f.saleErr
	}
	return &model.SaleResult{Success: true, Message: "Sale processed successfully", SaleID: 42, TotalAmount: 19.44}, nil
}

type recordingRenderer struct {
	mu            sync.Mutex
	sections      []string
	notifications []view.Notification
	billing       []view.BillingView
	products      []view.ProductTable
	forms         []view.ProductForm
	dashboards    []view.DashboardView
	customers     int
	sales         int
	redirects     []string
}

func (r *recordingRenderer) ShowSection(section string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections = append(r.sections, section)
}

func (r *recordingRenderer) RenderDashboard(d view.DashboardView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dashboards = append(r.dashboards, d)
}

func (r *recordingRenderer) RenderProducts(t view.ProductTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, t)
}

func (r *recordingRenderer) RenderProductForm(f view.ProductForm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms = append(r.forms, f)
}

func (r *recordingRenderer) RenderCustomers(view.CustomerTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers++
}

func (r *recordingRenderer) RenderBilling(b view.BillingView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.billing = append(r.billing, b)
}

func (r *recordingRenderer) RenderSales(view.SalesTable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales++
}

func (r *recordingRenderer) Notify(n view.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recordingRenderer) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirects = append(r.redirects, path)
}

func (r *recordingRenderer) lastNotification() view.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return view.Notification{}
	}
	return r.notifications[len(r.notifications)-1]
}

func (r *recordingRenderer) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, n.Message)
	}
	return out
}

var fixedNow = time.Date(2025, 3, 9, 14, 5, 0, 0, time.UTC)

func newTestConsole(t *testing.T, store *fakeStore) (ConsoleService, *recordingRenderer, repository.ActivityRepository) {
	t.Helper()
	r := &recordingRenderer{}
	journal := repository.NewMemoryActivityRepo(100)
	c := NewConsoleService(ConsoleOptions{
		SessionID: uuid.New(),
		Actor:     "admin",
		API:       store,
		Renderer:  r,
		Journal:   journal,
		Now:       func() time.Time { return fixedNow },
	})
	c.Start(context.Background())
	return c, r, journal
}

func TestStartLoadsDashboardProductsCustomers(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)

	assert.Equal(t, router.Dashboard, c.ActiveSection())
	assert.Equal(t, 1, store.count("dashboard"))
	assert.Equal(t, 1, store.count("products"))
	assert.Equal(t, 1, store.count("customers"))
	assert.Equal(t, 0, store.count("sales"))
	require.Len(t, r.dashboards, 1)
	assert.Equal(t, "$12.50", r.dashboards[0].Stats.TodaySales)

	state := c.BillingState()
	assert.Len(t, state.Products.Options, 2, "out of stock products are not offered")
	assert.Len(t, state.Customers.Options, 1)
}

func TestStartFailuresBecomeNotifications(t *testing.T) {
	store := newFakeStore()
	store.failLoads = apperr.Network("Could not reach the store API", errors.New("dial tcp: refused"))
	_, r, _ := newTestConsole(t, store)

	assert.ElementsMatch(t, []string{MsgDashboardLoadFailed, MsgProductsLoadFailed, MsgCustomersLoadFailed}, r.messages())
	for _, n := range r.notifications {
		assert.Equal(t, view.NotifyError, n.Type)
	}
}

func TestFailedLoadKeepsPreviousSnapshot(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)

	store.failLoads = apperr.Server("Unauthorized")
	err := c.LoadProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgProductsLoadFailed, r.lastNotification().Message)

	require.NoError(t, c.AddToCart(1, 1))
}

func TestSwitchSectionRunsLoads(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)
	ctx := context.Background()

	require.NoError(t, c.SwitchSection(ctx, router.Sales))
	assert.Equal(t, router.Sales, c.ActiveSection())
	assert.Equal(t, 1, store.count("sales"))
	assert.Equal(t, 1, r.sales)

	before := store.count("products") + store.count("customers")
	require.NoError(t, c.SwitchSection(ctx, router.Billing))
	assert.Equal(t, before, store.count("products")+store.count("customers"), "billing rebuilds from cache")

	require.NoError(t, c.SwitchSection(ctx, router.Customers))
	assert.Equal(t, 2, store.count("customers"))
	assert.Equal(t, []string{"dashboard", "sales", "billing", "customers"}, r.sections)
}

func TestAddToCartNotifications(t *testing.T) {
	c, r, _ := newTestConsole(t, newFakeStore())

	require.NoError(t, c.AddToCart(1, 2))
	assert.Equal(t, view.Success(MsgAddedToCart), r.lastNotification())

	err := c.AddToCart(0, 1)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, view.Failure("Please select a product and enter quantity"), r.lastNotification())

	err = c.AddToCart(1, 4)
	assert.True(t, apperr.Is(err, apperr.KindStockExceeded))
	assert.Equal(t, "Cannot add more. Total would exceed available stock (5)", r.lastNotification().Message)

	state := c.BillingState()
	require.Len(t, state.Cart.Lines, 1)
	assert.Equal(t, 2, state.Cart.Lines[0].Quantity)
}

func TestProcessSaleSuccessResetsCartAndForm(t *testing.T) {
	store := newFakeStore()
	c, r, journal := newTestConsole(t, store)
	ctx := context.Background()
	customer := int64(7)

	require.NoError(t, c.AddToCart(1, 2))
	require.NoError(t, c.SetBillingForm(model.BillingForm{CustomerID: &customer, PaymentMethod: "Card", DiscountPercent: 10}))

	productLoads := store.count("products")
	dashboardLoads := store.count("dashboard")
	res, err := c.ProcessSale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.SaleID)

	require.Len(t, store.saleRequests, 1)
	sent := store.saleRequests[0]
	assert.Equal(t, []model.CartItem{{ProductID: 1, Name: "Coffee Beans", Price: 10, Quantity: 2}}, sent.Items)
	assert.Equal(t, &customer, sent.CustomerID)
	assert.Equal(t, "Card", sent.PaymentMethod)
	assert.Equal(t, 10.0, sent.DiscountPercent)

	assert.Contains(t, r.messages(), "Sale processed successfully! Total: $19.44")

	state := c.BillingState()
	assert.True(t, state.Cart.Empty)
	assert.Equal(t, model.DefaultBillingForm(), state.Form)

	assert.Equal(t, productLoads+1, store.count("products"))
	assert.Equal(t, dashboardLoads+1, store.count("dashboard"))
	entries, err := journal.FindRecent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActivitySaleProcessed, entries[0].Action)
	assert.Equal(t, 19.44, entries[0].Amount)
}

func TestProcessSaleClearsLinesAddedInFlight(t *testing.T) {
	store := newFakeStore()
	store.saleStarted = make(chan struct{})
	store.saleRelease = make(chan struct{})
	c, _, _ := newTestConsole(t, store)

	require.NoError(t, c.AddToCart(1, 1))
	require.NoError(t, c.SetBillingForm(model.BillingForm{PaymentMethod: "Card", DiscountPercent: 5}))

	done := make(chan error, 1)
	go func() {
		_, err := c.ProcessSale(context.Background())
		done <- err
	}()

	select {
	case <-store.saleStarted:
	case <-time.After(time.Second):
		t.Fatal("sale never reached the store")
	}

	// the controller is not locked while the sale is in flight
	require.NoError(t, c.AddToCart(2, 1))
	require.Len(t, c.BillingState().Cart.Lines, 2)

	close(store.saleRelease)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sale did not finish")
	}

	require.Len(t, store.saleRequests, 1)
	assert.Len(t, store.saleRequests[0].Items, 1, "only the lines present at submit are sold")

	state := c.BillingState()
	assert.True(t, state.Cart.Empty)
	assert.Equal(t, model.DefaultBillingForm(), state.Form)
}

func TestProcessSaleFailureKeepsCart(t *testing.T) {
	store := newFakeStore()
	store.saleErr = apperr.Server("Insufficient stock for product ID 1")
	c, r, _ := newTestConsole(t, store)

	require.NoError(t, c.AddToCart(1, 2))
	require.NoError(t, c.SetBillingForm(model.BillingForm{PaymentMethod: "Card", DiscountPercent: 15}))

	_, err := c.ProcessSale(context.Background())
	require.Error(t, err)
	assert.Equal(t, view.Failure("Insufficient stock for product ID 1"), r.lastNotification())

	state := c.BillingState()
	require.Len(t, state.Cart.Lines, 1)
	assert.Equal(t, 15.0, state.Form.DiscountPercent)
	assert.Equal(t, "Card", state.Form.PaymentMethod)

	store.saleErr = apperr.Network("Could not reach the store API", errors.New("timeout"))
	_, err = c.ProcessSale(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgSaleFailed, r.lastNotification().Message)
	assert.Len(t, c.BillingState().Cart.Lines, 1)
}

func TestProcessSaleEmptyCart(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)

	_, err := c.ProcessSale(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, view.Failure(MsgCartEmpty), r.lastNotification())
	assert.Empty(t, store.saleRequests)
}

func TestSetBillingForm(t *testing.T) {
	c, _, _ := newTestConsole(t, newFakeStore())
	unknown := int64(99)

	err := c.SetBillingForm(model.BillingForm{CustomerID: &unknown})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, c.SetBillingForm(model.BillingForm{DiscountPercent: -5}))
	form := c.BillingState().Form
	assert.Equal(t, 0.0, form.DiscountPercent)
	assert.Equal(t, model.DefaultPaymentMethod, form.PaymentMethod)
}

func TestProductEditorCreateAndUpdate(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)
	ctx := context.Background()
	input := model.ProductInput{Name: "Oat Milk", Category: "Drinks", Price: 3.5, CostPrice: 2, StockQuantity: 20}

	form := c.NewProduct()
	assert.True(t, form.Visible)
	require.NoError(t, c.SaveProduct(ctx, input))
	require.Len(t, store.created, 1)
	assert.Equal(t, model.DefaultImageURL, store.created[0].ImageURL)
	assert.Equal(t, view.Success("Product added successfully"), r.notifications[len(r.notifications)-1])

	form, err := c.EditProduct(2)
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", form.Input.Name)
	require.NoError(t, c.SaveProduct(ctx, input))
	assert.Contains(t, store.updated, int64(2))

	lastForm := r.forms[len(r.forms)-1]
	assert.False(t, lastForm.Visible)

	_, err = c.EditProduct(404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSaveProductValidationAndServerMessage(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)
	ctx := context.Background()

	err := c.SaveProduct(ctx, model.ProductInput{Name: " ", Category: "Drinks"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, store.created)

	store.writeErr = apperr.Server("Barcode already exists")
	err = c.SaveProduct(ctx, model.ProductInput{Name: "Tea", Category: "Drinks"})
	require.Error(t, err)
	assert.Equal(t, "Barcode already exists", r.lastNotification().Message)

	store.writeErr = apperr.Network("Could not reach the store API", errors.New("eof"))
	require.Error(t, c.DeleteProduct(ctx, 1))
	assert.Equal(t, MsgProductDeleteFailed, r.lastNotification().Message)
}

func TestDeleteProductReloads(t *testing.T) {
	store := newFakeStore()
	c, _, journal := newTestConsole(t, store)
	dashboards := store.count("dashboard")

	require.NoError(t, c.DeleteProduct(context.Background(), 3))
	assert.Equal(t, []int64{3}, store.deleted)
	assert.Equal(t, dashboards+1, store.count("dashboard"))

	entries, err := journal.FindRecent(10)
	require.NoError(t, err)
	assert.Equal(t, model.ActivityProductDeleted, entries[0].Action)
}

func TestSaveCustomer(t *testing.T) {
	store := newFakeStore()
	c, r, _ := newTestConsole(t, store)
	ctx := context.Background()

	err := c.SaveCustomer(ctx, model.CustomerInput{Name: "Bo", Email: "not-an-email"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, c.SaveCustomer(ctx, model.CustomerInput{Name: "Bo"}))
	assert.Contains(t, r.messages(), "Customer added successfully")
	assert.Len(t, c.BillingState().Customers.Options, 2)
}

func TestLogoutAlwaysRedirects(t *testing.T) {
	store := newFakeStore()
	store.logoutErr = apperr.Network("Could not reach the store API", errors.New("refused"))
	c, r, _ := newTestConsole(t, store)

	err := c.Logout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{LoginPath}, r.redirects)
}

func TestRefreshRendersEverything(t *testing.T) {
	c, r, _ := newTestConsole(t, newFakeStore())
	dashboards := len(r.dashboards)

	c.Refresh()
	assert.Equal(t, dashboards+1, len(r.dashboards))
	assert.Len(t, r.dashboards[len(r.dashboards)-1].Charts, 3)
	assert.Equal(t, 1, r.sales)
}
