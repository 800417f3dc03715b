package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-store-console/internal/apperr"
	"go-store-console/internal/cache"
	"go-store-console/internal/cart"
	"go-store-console/internal/model"
	"go-store-console/internal/repository"
	"go-store-console/internal/router"
	"go-store-console/internal/view"
	"go-store-console/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgDashboardLoadFailed = "Error loading dashboard data"
	MsgProductsLoadFailed  = "Error loading products"
	MsgCustomersLoadFailed = "Error loading customers"
	MsgSalesLoadFailed     = "Error loading sales"
	MsgProductSaveFailed   = "Error saving product"
	MsgCustomerSaveFailed  = "Error saving customer"
	MsgProductDeleteFailed = "Error deleting product"
	MsgSaleFailed          = "Error processing sale"
	MsgCartEmpty           = "Cart is empty"
	MsgAddedToCart         = "Product added to cart"
	MsgProductNotFound     = "Product not found"

	LoginPath = "/login"
)

// StoreAPI is what the console needs from the store API client
type StoreAPI interface {
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) (*model.Dashboard, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, input model.ProductInput) (*model.APIResult, error)
	UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.APIResult, error)
	DeleteProduct(ctx context.Context, id int64) (*model.APIResult, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, input model.CustomerInput) (*model.APIResult, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
	ProcessSale(ctx context.Context, req model.SaleRequest) (*model.SaleResult, error)
}

// ConsoleService is one operator's admin console: caches, cart, billing form and the active section.
// Every failing operation has already notified the operator when it returns its error.
type ConsoleService interface {
	SessionID() uuid.UUID
	Actor() string
	Start(ctx context.Context)
	Refresh()
	Close()

	ActiveSection() router.Section
	SwitchSection(ctx context.Context, section router.Section) error
	LoadDashboard(ctx context.Context) error
	LoadProducts(ctx context.Context) error
	LoadCustomers(ctx context.Context) error
	LoadBillingData(ctx context.Context) error
	LoadSales(ctx context.Context) error

	EditProduct(id int64) (view.ProductForm, error)
	NewProduct() view.ProductForm
	CancelProductForm()
	SaveProduct(ctx context.Context, input model.ProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	SaveCustomer(ctx context.Context, input model.CustomerInput) error

	AddToCart(productID int64, quantity int) error
	UpdateCartQuantity(productID int64, quantity int) error
	RemoveFromCart(productID int64)
	SetBillingForm(form model.BillingForm) error
	ResetBilling()
	BillingState() view.BillingView
	ProcessSale(ctx context.Context) (*model.SaleResult, error)

	Logout(ctx context.Context) error
}

// ConsoleOptions wires one console. Renderer, Journal, Logger and Now are optional.
type ConsoleOptions struct {
	SessionID uuid.UUID
	Actor     string
	API       StoreAPI
	Renderer  view.Renderer
	Journal   repository.ActivityRepository
	Logger    *zap.Logger
	Now       func() time.Time
}

type consoleService struct {
	sessionID uuid.UUID
	actor     string
	api       StoreAPI
	cache     *cache.Store
	router    *router.Router
	renderer  view.Renderer
	journal   repository.ActivityRepository
	log       *zap.Logger
	now       func() time.Time

	// mu guards everything below. It is never held across a store API call.
	mu               sync.Mutex
	cart             *cart.Engine
	form             model.BillingForm
	editingProductID *int64
	productForm      view.ProductForm
	charts           map[string]view.Chart
}

func NewConsoleService(opts ConsoleOptions) ConsoleService {
	s := &consoleService{
		sessionID:   opts.SessionID,
		actor:       opts.Actor,
		api:         opts.API,
		cache:       cache.New(),
		renderer:    opts.Renderer,
		journal:     opts.Journal,
		log:         opts.Logger,
		now:         opts.Now,
		cart:        cart.New(),
		form:        model.DefaultBillingForm(),
		productForm: view.HiddenProductForm(),
		charts:      map[string]view.Chart{},
	}
	if s.sessionID == uuid.Nil {
		s.sessionID = uuid.New()
	}
	if s.renderer == nil {
		s.renderer = view.NopRenderer{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.With(zap.String("session_id", s.sessionID.String()))
	s.router = router.New(s, func(section router.Section) {
		s.renderer.ShowSection(string(section))
	})
	return s
}

func (s *consoleService) SessionID() uuid.UUID { return s.sessionID }

func (s *consoleService) Actor() string { return s.actor }

// Start runs the initial dashboard, products and customers loads side by side.
// Failures are reported as notifications; the console stays usable with whatever loaded.
func (s *consoleService) Start(ctx context.Context) {
	s.renderer.ShowSection(string(s.router.Active()))

	var g errgroup.Group
	g.Go(func() error { return s.LoadDashboard(ctx) })
	g.Go(func() error { return s.LoadProducts(ctx) })
	g.Go(func() error { return s.LoadCustomers(ctx) })
	if err := g.Wait(); err != nil {
		s.log.Warn("initial load incomplete", zap.Error(err))
	}
}

// Refresh re-renders every view from the caches, for a freshly attached screen
func (s *consoleService) Refresh() {
	s.renderer.ShowSection(string(s.router.Active()))
	if d, ok := s.cache.Dashboard(); ok {
		dv := view.BuildDashboard(d)
		s.mu.Lock()
		dv.Charts = s.charts
		s.mu.Unlock()
		s.renderer.RenderDashboard(dv)
	}
	s.renderer.RenderProducts(view.BuildProductTable(s.cache.Products()))
	s.renderer.RenderCustomers(view.BuildCustomerTable(s.cache.Customers()))
	s.renderer.RenderSales(view.BuildSalesTable(s.cache.Sales()))

	s.mu.Lock()
	form := s.productForm
	s.mu.Unlock()
	s.renderer.RenderProductForm(form)
	s.renderBilling()
}

func (s *consoleService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.charts = map[string]view.Chart{}
}

func (s *consoleService) ActiveSection() router.Section {
	return s.router.Active()
}

func (s *consoleService) SwitchSection(ctx context.Context, section router.Section) error {
	return s.router.Switch(ctx, section)
}

func (s *consoleService) LoadDashboard(ctx context.Context) error {
	d, err := s.api.Dashboard(ctx)
	if err != nil {
		return s.fail(err, MsgDashboardLoadFailed, true)
	}
	s.cache.SetDashboard(*d)

	dv := view.BuildDashboard(*d)
	s.mu.Lock()
	s.charts = dv.Charts
	s.mu.Unlock()

	s.renderer.RenderDashboard(dv)
	return nil
}

func (s *consoleService) LoadProducts(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return s.fail(err, MsgProductsLoadFailed, true)
	}
	s.cache.ReplaceProducts(products)

	s.renderer.RenderProducts(view.BuildProductTable(products))
	s.renderBilling()
	return nil
}

func (s *consoleService) LoadCustomers(ctx context.Context) error {
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		return s.fail(err, MsgCustomersLoadFailed, true)
	}
	s.cache.ReplaceCustomers(customers)

	s.renderer.RenderCustomers(view.BuildCustomerTable(customers))
	s.renderBilling()
	return nil
}

// LoadBillingData rebuilds the billing section from the caches without any fetch
func (s *consoleService) LoadBillingData(ctx context.Context) error {
	s.renderBilling()
	return nil
}

func (s *consoleService) LoadSales(ctx context.Context) error {
	sales, err := s.api.ListSales(ctx)
	if err != nil {
		return s.fail(err, MsgSalesLoadFailed, true)
	}
	s.cache.ReplaceSales(sales)

	s.renderer.RenderSales(view.BuildSalesTable(sales))
	return nil
}

func (s *consoleService) EditProduct(id int64) (view.ProductForm, error) {
	p, ok := s.cache.FindProduct(id)
	if !ok {
		return view.ProductForm{}, s.fail(apperr.NotFound(MsgProductNotFound), MsgProductNotFound, false)
	}

	form := view.EditProductForm(p)
	s.mu.Lock()
	s.editingProductID = &p.ID
	s.productForm = form
	s.mu.Unlock()

	s.renderer.RenderProductForm(form)
	return form, nil
}

func (s *consoleService) NewProduct() view.ProductForm {
	form := view.NewProductForm()
	s.mu.Lock()
	s.editingProductID = nil
	s.productForm = form
	s.mu.Unlock()

	s.renderer.RenderProductForm(form)
	return form
}

func (s *consoleService) CancelProductForm() {
	s.mu.Lock()
	s.editingProductID = nil
	s.productForm = view.HiddenProductForm()
	s.mu.Unlock()

	s.renderer.RenderProductForm(view.HiddenProductForm())
}

// SaveProduct creates a product, or updates the one opened with EditProduct
func (s *consoleService) SaveProduct(ctx context.Context, input model.ProductInput) error {
	if input.ImageURL == "" {
		input.ImageURL = model.DefaultImageURL
	}
	if err := validator.Check(input); err != nil {
		return s.fail(err, MsgProductSaveFailed, false)
	}

	s.mu.Lock()
	editing := s.editingProductID
	s.mu.Unlock()

	var (
		result *model.APIResult
		err    error
	)
	if editing != nil {
		result, err = s.api.UpdateProduct(ctx, *editing, input)
	} else {
		result, err = s.api.CreateProduct(ctx, input)
	}
	if err != nil {
		return s.fail(err, MsgProductSaveFailed, false)
	}

	s.renderer.Notify(view.Success(result.Message))
	s.CancelProductForm()
	s.record(model.ActivityProductSaved, input.Name, 0)
	s.reloadAfterWrite(ctx)
	return nil
}

func (s *consoleService) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.api.DeleteProduct(ctx, id)
	if err != nil {
		return s.fail(err, MsgProductDeleteFailed, false)
	}

	s.mu.Lock()
	if s.editingProductID != nil && *s.editingProductID == id {
		s.editingProductID = nil
		s.productForm = view.HiddenProductForm()
	}
	s.mu.Unlock()

	s.renderer.Notify(view.Success(result.Message))
	s.record(model.ActivityProductDeleted, fmt.Sprintf("product #%d", id), 0)
	s.reloadAfterWrite(ctx)
	return nil
}

func (s *consoleService) SaveCustomer(ctx context.Context, input model.CustomerInput) error {
	if err := validator.Check(input); err != nil {
		return s.fail(err, MsgCustomerSaveFailed, false)
	}

	result, err := s.api.CreateCustomer(ctx, input)
	if err != nil {
		return s.fail(err, MsgCustomerSaveFailed, false)
	}

	s.renderer.Notify(view.Success(result.Message))
	s.record(model.ActivityCustomerSaved, input.Name, 0)
	_ = s.LoadCustomers(ctx)
	return nil
}

func (s *consoleService) AddToCart(productID int64, quantity int) error {
	s.mu.Lock()
	err := s.cart.AddItem(s.cache, productID, quantity)
	s.mu.Unlock()
	if err != nil {
		return s.fail(err, cart.ErrMsgSelectProduct, false)
	}

	s.renderer.Notify(view.Success(MsgAddedToCart))
	s.renderBilling()
	return nil
}

func (s *consoleService) UpdateCartQuantity(productID int64, quantity int) error {
	s.mu.Lock()
	err := s.cart.UpdateQuantity(s.cache, productID, quantity)
	s.mu.Unlock()
	if err != nil {
		return s.fail(err, cart.ErrMsgQuantityNeeded, false)
	}

	s.renderBilling()
	return nil
}

func (s *consoleService) RemoveFromCart(productID int64) {
	s.mu.Lock()
	s.cart.RemoveItem(productID)
	s.mu.Unlock()

	s.renderBilling()
}

// SetBillingForm replaces customer, payment method and discount. An unknown customer is rejected.
func (s *consoleService) SetBillingForm(form model.BillingForm) error {
	if form.PaymentMethod == "" {
		form.PaymentMethod = model.DefaultPaymentMethod
	}
	if err := validator.Check(form); err != nil {
		return s.fail(err, err.Error(), false)
	}
	if form.CustomerID != nil {
		if _, ok := s.cache.FindCustomer(*form.CustomerID); !ok {
			return s.fail(apperr.NotFound("Customer not found"), "Customer not found", false)
		}
	}
	form.DiscountPercent = cart.SanitizeDiscount(form.DiscountPercent)

	s.mu.Lock()
	s.form = form
	s.mu.Unlock()

	s.renderBilling()
	return nil
}

func (s *consoleService) ResetBilling() {
	s.mu.Lock()
	s.cart.Clear()
	s.form = model.DefaultBillingForm()
	s.mu.Unlock()

	s.renderBilling()
}

func (s *consoleService) BillingState() view.BillingView {
	s.mu.Lock()
	items := s.cart.Items()
	form := s.form
	s.mu.Unlock()

	return view.BuildBilling(s.cache.Products(), s.cache.Customers(), items, form, s.now())
}

// ProcessSale submits the cart. On success the cart and billing form reset and stock-bearing
// caches reload; on failure both stay exactly as they were.
func (s *consoleService) ProcessSale(ctx context.Context) (*model.SaleResult, error) {
	s.mu.Lock()
	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return nil, s.fail(apperr.Validation(MsgCartEmpty), MsgCartEmpty, false)
	}
	req := model.SaleRequest{
		Items:           s.cart.Items(),
		CustomerID:      s.form.CustomerID,
		PaymentMethod:   s.form.PaymentMethod,
		DiscountPercent: cart.SanitizeDiscount(s.form.DiscountPercent),
	}
	s.mu.Unlock()

	if err := validator.Check(req); err != nil {
		return nil, s.fail(err, MsgSaleFailed, false)
	}

	result, err := s.api.ProcessSale(ctx, req)
	if err != nil {
		return nil, s.fail(err, MsgSaleFailed, false)
	}

	s.mu.Lock()
	s.cart.Clear()
	s.form = model.DefaultBillingForm()
	s.mu.Unlock()

	s.log.Info("sale processed",
		zap.Int64("sale_id", result.SaleID),
		zap.Int("lines", len(req.Items)),
		zap.Float64("total", result.TotalAmount))
	s.renderer.Notify(view.Success(fmt.Sprintf("Sale processed successfully! Total: %s", view.Money(result.TotalAmount))))
	s.renderBilling()
	s.record(model.ActivitySaleProcessed, fmt.Sprintf("sale #%d", result.SaleID), result.TotalAmount)
	s.reloadAfterWrite(ctx)
	return result, nil
}

// Logout ends the upstream session and always sends the screen to the login page
func (s *consoleService) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil {
		s.log.Warn("store api logout failed", zap.Error(err))
	}
	s.record(model.ActivityLogout, "", 0)
	s.renderer.Redirect(LoginPath)
	return err
}

// reloadAfterWrite refreshes products and dashboard concurrently. Each load reports its own failure.
func (s *consoleService) reloadAfterWrite(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return s.LoadProducts(ctx) })
	g.Go(func() error { return s.LoadDashboard(ctx) })
	if err := g.Wait(); err != nil {
		s.log.Warn("reload after write incomplete", zap.Error(err))
	}
}

func (s *consoleService) renderBilling() {
	s.renderer.RenderBilling(s.BillingState())
}

// fail notifies the operator and returns err. Loads always show fallback; other operations show the
// message of a rejected request and fallback only when the store API could not be reached.
func (s *consoleService) fail(err error, fallback string, isLoad bool) error {
	message := err.Error()
	if isLoad || apperr.Is(err, apperr.KindNetwork) || apperr.Is(err, apperr.KindUnknown) {
		message = fallback
	}
	if apperr.Is(err, apperr.KindNetwork) || apperr.Is(err, apperr.KindServer) {
		s.log.Warn(fallback, zap.Error(err))
	}
	s.renderer.Notify(view.Failure(message))
	return err
}

func (s *consoleService) record(action model.ActivityAction, detail string, amount float64) {
	if s.journal == nil {
		return
	}
	entry := &model.ActivityEntry{
		SessionID: s.sessionID,
		Actor:     s.actor,
		Action:    action,
		Detail:    detail,
		Amount:    amount,
	}
	entry.CreatedBy = s.actor
	if err := s.journal.Record(entry); err != nil {
		s.log.Error("failed to record activity", zap.String("action", string(action)), zap.Error(err))
	}
}
