package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStoreAPI mimics the store API: a session cookie after login, 401 without it.
func fakeStoreAPI(t *testing.T) (*httptest.Server, *model.SaleRequest) {
	t.Helper()
	var lastSale model.SaleRequest

	authed := func(w http.ResponseWriter, r *http.Request) bool {
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "admin123" {
			_ = json.NewEncoder(w).Encode(model.APIResult{Success: false, Message: "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		_ = json.NewEncoder(w).Encode(model.APIResult{Success: true, Message: "Login successful"})
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		_ = json.NewEncoder(w).Encode(model.APIResult{Success: true, Message: "Logged out successfully"})
	})
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(model.APIResult{Success: true, Message: "Product added successfully"})
			return
		}
		_ = json.NewEncoder(w).Encode([]model.Product{{ID: 1, Name: "Tea", Price: 4.5, CostPrice: 3, StockQuantity: 12}})
	})
	mux.HandleFunc("/api/products/7", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(model.APIResult{Success: false, Message: "Product not found"})
	})
	mux.HandleFunc("/api/sales/process", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&lastSale)
		if lastSale.Items[0].Quantity > 10 {
			_ = json.NewEncoder(w).Encode(model.SaleResult{Success: false, Message: "Insufficient stock for product ID 1"})
			return
		}
		_ = json.NewEncoder(w).Encode(model.SaleResult{Success: true, Message: "Sale processed successfully", SaleID: 9, TotalAmount: 19.44})
	})
	mux.HandleFunc("/api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"total_products": 40, "low_stock": 3, "today_sales": 12.5, "month_sales": 300,
			"daily_sales": [{"date": "2025-03-09", "sales": 12.5}], "top_products": [{"name": "Tea", "sold": 4}],
			"category_sales": [{"category": "Drinks", "sales": 12.5}]}`))
	})
	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &lastSale
}

func login(t *testing.T, c *Client) {
	t.Helper()
	_, err := c.Login(context.Background(), model.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
}

func TestLoginCarriesSessionCookie(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)
	ctx := context.Background()

	_, err := c.ListProducts(ctx)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindServer))
	assert.Equal(t, "Unauthorized", err.Error())

	login(t, c)
	assert.True(t, c.HasSession())

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name)
	assert.Equal(t, 12, products[0].StockQuantity)
}

func TestLoginRejected(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)

	_, err := c.Login(context.Background(), model.Credentials{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.False(t, c.HasSession())
}

func TestWriteEnvelope(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)
	login(t, c)
	ctx := context.Background()

	res, err := c.CreateProduct(ctx, model.ProductInput{Name: "Tea", Category: "Drinks"})
	require.NoError(t, err)
	assert.Equal(t, "Product added successfully", res.Message)

	_, err = c.UpdateProduct(ctx, 7, model.ProductInput{Name: "Tea", Category: "Drinks"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindServer))
	assert.Equal(t, "Product not found", err.Error())
}

func TestProcessSale(t *testing.T) {
	srv, lastSale := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)
	login(t, c)
	ctx := context.Background()

	req := model.SaleRequest{
		Items:           []model.CartItem{{ProductID: 1, Name: "Tea", Price: 10, Quantity: 2}},
		PaymentMethod:   "Cash",
		DiscountPercent: 10,
	}
	res, err := c.ProcessSale(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 19.44, res.TotalAmount)
	assert.Equal(t, int64(9), res.SaleID)
	assert.Equal(t, req.Items, lastSale.Items)
	assert.Nil(t, lastSale.CustomerID)

	req.Items[0].Quantity = 11
	_, err = c.ProcessSale(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock for product ID 1", err.Error())
}

func TestDashboardDecoding(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)
	login(t, c)

	d, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), d.TotalProducts)
	assert.Equal(t, []model.TopProduct{{Name: "Tea", Sold: 4}}, d.TopProducts)
}

func TestUndecodableBodyIsNetworkError(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)

	_, err := c.ListSales(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
}

func TestUnreachableIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	_, err := c.ListCustomers(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
	assert.Equal(t, ErrMsgUnreachable, err.Error())
}

func TestCancelledContext(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Dashboard(ctx)
	assert.True(t, apperr.Is(err, apperr.KindNetwork))
}

func TestLogoutDropsSession(t *testing.T) {
	srv, _ := fakeStoreAPI(t)
	c := New(srv.URL, 2*time.Second, nil)
	login(t, c)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.HasSession())
}
