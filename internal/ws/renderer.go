package ws

import (
	"encoding/json"

	"go-store-console/internal/view"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TypeSection      = "section"
	TypeView         = "view"
	TypeNotification = "notification"
	TypeRedirect     = "redirect"
)

// Envelope is the JSON frame sent to the browser
type Envelope struct {
	Type string      `json:"type"`
	View string      `json:"view,omitempty"`
	Data interface{} `json:"data"`
}

// SessionRenderer pushes a console's view-models to the screens of its session
type SessionRenderer struct {
	hub       *Hub
	sessionID uuid.UUID
}

func NewSessionRenderer(hub *Hub, sessionID uuid.UUID) *SessionRenderer {
	return &SessionRenderer{hub: hub, sessionID: sessionID}
}

func (r *SessionRenderer) send(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		r.hub.log.Error("failed to encode view",
			zap.String("type", env.Type), zap.String("view", env.View), zap.Error(err))
		return
	}
	r.hub.Send(r.sessionID, payload)
}

func (r *SessionRenderer) ShowSection(section string) {
	r.send(Envelope{Type: TypeSection, Data: section})
}

func (r *SessionRenderer) RenderDashboard(v view.DashboardView) {
	r.send(Envelope{Type: TypeView, View: "dashboard", Data: v})
}

func (r *SessionRenderer) RenderProducts(v view.ProductTable) {
	r.send(Envelope{Type: TypeView, View: "products", Data: v})
}

func (r *SessionRenderer) RenderProductForm(v view.ProductForm) {
	r.send(Envelope{Type: TypeView, View: "product_form", Data: v})
}

func (r *SessionRenderer) RenderCustomers(v view.CustomerTable) {
	r.send(Envelope{Type: TypeView, View: "customers", Data: v})
}

func (r *SessionRenderer) RenderBilling(v view.BillingView) {
	r.send(Envelope{Type: TypeView, View: "billing", Data: v})
}

func (r *SessionRenderer) RenderSales(v view.SalesTable) {
	r.send(Envelope{Type: TypeView, View: "sales", Data: v})
}

func (r *SessionRenderer) Notify(n view.Notification) {
	r.send(Envelope{Type: TypeNotification, Data: n})
}

func (r *SessionRenderer) Redirect(path string) {
	r.send(Envelope{Type: TypeRedirect, Data: path})
}
