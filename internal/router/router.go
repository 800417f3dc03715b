// Package router tracks the active console section and runs the loads each section needs on entry.
package router

import (
	"context"
	"sync"

	"go-store-console/internal/apperr"
)

type Section string

const (
	Dashboard Section = "dashboard"
	Products  Section = "products"
	Customers Section = "customers"
	Billing   Section = "billing"
	Sales     Section = "sales"
)

var sections = []Section{Dashboard, Products, Customers, Billing, Sales}

func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

func ParseSection(name string) (Section, error) {
	for _, s := range sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", apperr.Validationf("Unknown section '%s'", name)
}

// Loader performs the refresh for each section.
// LoadBillingData must rebuild from cached data only.
type Loader interface {
	LoadDashboard(ctx context.Context) error
	LoadProducts(ctx context.Context) error
	LoadCustomers(ctx context.Context) error
	LoadBillingData(ctx context.Context) error
	LoadSales(ctx context.Context) error
}

// Router holds exactly one active section.
type Router struct {
	mu      sync.RWMutex
	active  Section
	loader  Loader
	onEnter func(Section)
}

// New starts on the dashboard. onEnter, when set, is called before the section's load runs.
func New(loader Loader, onEnter func(Section)) *Router {
	return &Router{active: Dashboard, loader: loader, onEnter: onEnter}
}

func (r *Router) Active() Section {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Switch activates section and runs its load. The section stays active even when the load fails.
func (r *Router) Switch(ctx context.Context, section Section) error {
	if _, err := ParseSection(string(section)); err != nil {
		return err
	}

	r.mu.Lock()
	r.active = section
	r.mu.Unlock()

	if r.onEnter != nil {
		r.onEnter(section)
	}

	switch section {
	case Dashboard:
		return r.loader.LoadDashboard(ctx)
	case Products:
		return r.loader.LoadProducts(ctx)
	case Customers:
		return r.loader.LoadCustomers(ctx)
	case Billing:
		return r.loader.LoadBillingData(ctx)
	case Sales:
		return r.loader.LoadSales(ctx)
	}
	return nil
}
