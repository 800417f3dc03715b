// Package cache holds the console's local copies of the store API collections.
// Every load replaces a collection wholesale; nothing is merged or patched.
package cache

import (
	"sync"

	"go-store-console/internal/model"
)

type Store struct {
	mu        sync.RWMutex
	products  []model.Product
	customers []model.Customer
	sales     []model.Sale
	dashboard *model.Dashboard
}

func New() *Store {
	return &Store{}
}

func (s *Store) ReplaceProducts(products []model.Product) {
	snapshot := make([]model.Product, len(products))
	copy(snapshot, products)

	s.mu.Lock()
	s.products = snapshot
	s.mu.Unlock()
}

func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindProduct looks id up in the current catalog snapshot
func (s *Store) FindProduct(id int64) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (s *Store) ReplaceCustomers(customers []model.Customer) {
	snapshot := make([]model.Customer, len(customers))
	copy(snapshot, customers)

	s.mu.Lock()
	s.customers = snapshot
	s.mu.Unlock()
}

func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) FindCustomer(id int64) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

func (s *Store) ReplaceSales(sales []model.Sale) {
	snapshot := make([]model.Sale, len(sales))
	copy(snapshot, sales)

	s.mu.Lock()
	s.sales = snapshot
	s.mu.Unlock()
}

func (s *Store) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) SetDashboard(d model.Dashboard) {
	s.mu.Lock()
	s.dashboard = &d
	s.mu.Unlock()
}

// Dashboard returns the last loaded aggregate, or false before the first successful load
func (s *Store) Dashboard() (model.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dashboard == nil {
		return model.Dashboard{}, false
	}
	return *s.dashboard, true
}
