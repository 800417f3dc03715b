package view

// Renderer is the presentation boundary. The console hands it finished view-models;
// how they reach pixels is the implementation's business.
type Renderer interface {
	ShowSection(section string)
	RenderDashboard(DashboardView)
	RenderProducts(ProductTable)
	RenderProductForm(ProductForm)
	RenderCustomers(CustomerTable)
	RenderBilling(BillingView)
	RenderSales(SalesTable)
	Notify(Notification)
	Redirect(path string)
}

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is a transient message shown to the operator
type Notification struct {
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

func Success(message string) Notification {
	return Notification{Message: message, Type: NotifySuccess}
}

func Failure(message string) Notification {
	return Notification{Message: message, Type: NotifyError}
}

// NopRenderer discards everything. Used before a browser attaches to a session.
type NopRenderer struct{}

func (NopRenderer) ShowSection(string) {}
func (NopRenderer) RenderDashboard(DashboardView) {}
func (NopRenderer) RenderProducts(ProductTable) {}
func (NopRenderer) RenderProductForm(ProductForm) {}
func (NopRenderer) RenderCustomers(CustomerTable) {}
func (NopRenderer) RenderBilling(BillingView) {}
func (NopRenderer) RenderSales(SalesTable) {}
func (NopRenderer) Notify(Notification) {}
func (NopRenderer) Redirect(string) {}
