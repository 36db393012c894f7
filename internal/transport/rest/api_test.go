// Package rest_test exercises the HTTP API end to end against the in-memory
// stores: real router, middleware, handlers, services and validation.
package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/goinventory/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productURL   = "/api/v1/products"
	inventoryURL = "/api/v1/inventories"
)

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

type inventoryResponse struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	CurrentStock int32  `json:"current_stock"`
	LastUpdated  string `json:"last_updated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// newTestServer builds the full HTTP handler over fresh in-memory stores.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := app.SetupDependencies(nil, logger)
	server := httptest.NewServer(app.SetupHttpHandler(deps))
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createProduct(t *testing.T, server *httptest.Server, body map[string]any) productResponse {
	t.Helper()
	resp, data := doRequest(t, server, http.MethodPost, productURL, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create product: %s", data)
	var created productResponse
	require.NoError(t, json.Unmarshal(data, &created))
	return created
}

func createInventory(t *testing.T, server *httptest.Server, body map[string]any) inventoryResponse {
	t.Helper()
	resp, data := doRequest(t, server, http.MethodPost, inventoryURL, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create inventory: %s", data)
	var created inventoryResponse
	require.NoError(t, json.Unmarshal(data, &created))
	return created
}

func Test_ProductAPI_CRUD(t *testing.T) {
	server := newTestServer(t)

	// create
	created := createProduct(t, server, map[string]any{
		"name":     "Gaming Laptop",
		"category": "Electronics",
		"price":    1500.0,
	})
	assert.NotZero(t, created.ID)
	assert.Equal(t, "AVAILABLE", created.Status, "status defaults to AVAILABLE")

	// read
	resp, data := doRequest(t, server, http.MethodGet, fmt.Sprintf("%s/%d", productURL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched productResponse
	require.NoError(t, json.Unmarshal(data, &fetched))
	assert.Equal(t, created, fetched)

	// update
	resp, data = doRequest(t, server, http.MethodPut, fmt.Sprintf("%s/%d", productURL, created.ID), map[string]any{
		"name":  "Gaming Laptop Pro",
		"price": 1800.0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated productResponse
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "Gaming Laptop Pro", updated.Name)
	assert.Equal(t, 1800.0, updated.Price)
	assert.Equal(t, "Electronics", updated.Category, "omitted fields keep their value")

	// patch status
	resp, data = doRequest(t, server, http.MethodPatch, fmt.Sprintf("%s/%d/status?status=NOT_AVAILABLE", productURL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "NOT_AVAILABLE", updated.Status)

	// delete
	resp, _ = doRequest(t, server, http.MethodDelete, fmt.Sprintf("%s/%d", productURL, created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodGet, fmt.Sprintf("%s/%d", productURL, created.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_ProductAPI_Validation(t *testing.T) {
	server := newTestServer(t)

	testCases := []struct {
		name           string
		body           map[string]any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing name fails struct validation",
			body:           map[string]any{"price": 10.0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           map[string]any{"name": "Toy", "price": -1.0},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown status",
			body:           map[string]any{"name": "Toy", "status": "DISCONTINUED"},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := doRequest(t, server, http.MethodPost, productURL, tc.body)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func Test_ProductAPI_NotFoundAndBadID(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doRequest(t, server, http.MethodGet, productURL+"/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodGet, productURL+"/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A zero ID is rejected by the service validator.
	resp, data := doRequest(t, server, http.MethodGet, productURL+"/0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, "Product ID must be a positive number", errResp.Error)
}

func Test_ProductAPI_Search(t *testing.T) {
	server := newTestServer(t)
	createProduct(t, server, map[string]any{"name": "Gaming Laptop", "category": "Electronics", "price": 1500.0})
	createProduct(t, server, map[string]any{"name": "Office Chair", "category": "Furniture", "price": 200.0})
	createProduct(t, server, map[string]any{"name": "Laptop Stand", "category": "Accessories", "price": 50.0, "status": "NOT_AVAILABLE"})

	testCases := []struct {
		name          string
		path          string
		expectedNames []string
	}{
		{
			name:          "no criteria returns everything",
			path:          productURL + "/search",
			expectedNames: []string{"Gaming Laptop", "Office Chair", "Laptop Stand"},
		},
		{
			name:          "keyword",
			path:          productURL + "/search?keyword=laptop",
			expectedNames: []string{"Gaming Laptop", "Laptop Stand"},
		},
		{
			name:          "keyword with price range",
			path:          productURL + "/search?keyword=laptop&minPrice=100",
			expectedNames: []string{"Gaming Laptop"},
		},
		{
			name:          "active products only",
			path:          productURL + "/search/active",
			expectedNames: []string{"Gaming Laptop", "Office Chair"},
		},
		{
			name:          "by category",
			path:          productURL + "/search/category?category=furniture",
			expectedNames: []string{"Office Chair"},
		},
		{
			name:          "price range is inclusive",
			path:          productURL + "/search/price-range?minPrice=50&maxPrice=200",
			expectedNames: []string{"Office Chair", "Laptop Stand"},
		},
		{
			name:          "available above price is strict",
			path:          productURL + "/search/available-above-price?minPrice=200",
			expectedNames: []string{"Gaming Laptop"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := doRequest(t, server, http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, "%s", data)
			var list []productResponse
			require.NoError(t, json.Unmarshal(data, &list))
			names := make([]string, 0, len(list))
			for _, p := range list {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}

func Test_ProductAPI_Paged(t *testing.T) {
	server := newTestServer(t)
	for _, name := range []string{"C", "A", "B"} {
		createProduct(t, server, map[string]any{"name": name})
	}

	resp, data := doRequest(t, server, http.MethodGet, productURL+"/paged?page=0&size=2&sort=name", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Items         []productResponse `json:"items"`
		TotalElements int64             `json:"total_elements"`
		TotalPages    int32             `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, int32(2), page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "A", page.Items[0].Name)
	assert.Equal(t, "B", page.Items[1].Name)

	// Missing paging parameters fall back to page 0, size 20, sorted by id.
	resp, data = doRequest(t, server, http.MethodGet, productURL+"/paged", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%s", data)
	var defaulted struct {
		Items []productResponse `json:"items"`
		Page  int32             `json:"page"`
		Size  int32             `json:"size"`
	}
	require.NoError(t, json.Unmarshal(data, &defaulted))
	assert.Equal(t, int32(0), defaulted.Page)
	assert.Equal(t, int32(20), defaulted.Size)
	require.Len(t, defaulted.Items, 3)
	assert.Equal(t, "C", defaulted.Items[0].Name, "default sort is by id")

	// Malformed paging parameters are still rejected.
	resp, _ = doRequest(t, server, http.MethodGet, productURL+"/paged?page=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doRequest(t, server, http.MethodGet, productURL+"/paged?size=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_InventoryAPI_CRUD(t *testing.T) {
	server := newTestServer(t)
	product := createProduct(t, server, map[string]any{"name": "Laptop"})

	// create
	created := createInventory(t, server, map[string]any{
		"product_id":    product.ID,
		"current_stock": 100,
	})
	assert.NotZero(t, created.ID)
	assert.Equal(t, product.ID, created.ProductID)
	assert.NotEmpty(t, created.LastUpdated)

	// patch stock via query parameter
	resp, data := doRequest(t, server, http.MethodPatch, fmt.Sprintf("%s/%d/stock?stockLevel=42", inventoryURL, created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%s", data)
	var updated inventoryResponse
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, int32(42), updated.CurrentStock)

	// delete
	resp, _ = doRequest(t, server, http.MethodDelete, fmt.Sprintf("%s/%d", inventoryURL, created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, server, http.MethodGet, fmt.Sprintf("%s/%d", inventoryURL, created.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_InventoryAPI_CreateRequiresExistingProduct(t *testing.T) {
	server := newTestServer(t)

	resp, data := doRequest(t, server, http.MethodPost, inventoryURL, map[string]any{
		"product_id":    42,
		"current_stock": 10,
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, "Product not found with id: 42", errResp.Error)
}

func Test_InventoryAPI_StockValidation(t *testing.T) {
	server := newTestServer(t)
	product := createProduct(t, server, map[string]any{"name": "Laptop"})
	created := createInventory(t, server, map[string]any{"product_id": product.ID, "current_stock": 10})

	// missing stockLevel parameter
	resp, data := doRequest(t, server, http.MethodPatch, fmt.Sprintf("%s/%d/stock", inventoryURL, created.ID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, "Stock level is required", errResp.Error)

	// stock above the maximum
	resp, data = doRequest(t, server, http.MethodPatch, fmt.Sprintf("%s/%d/stock?stockLevel=1000001", inventoryURL, created.ID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &errResp))
	assert.Equal(t, "Stock level exceeds maximum allowed: 1000000", errResp.Error)
}

func Test_InventoryAPI_Search(t *testing.T) {
	server := newTestServer(t)
	laptop := createProduct(t, server, map[string]any{"name": "Laptop"})
	chair := createProduct(t, server, map[string]any{"name": "Chair"})
	createInventory(t, server, map[string]any{"product_id": laptop.ID, "current_stock": 5})
	createInventory(t, server, map[string]any{"product_id": laptop.ID, "current_stock": 500})
	createInventory(t, server, map[string]any{"product_id": chair.ID, "current_stock": 50})

	testCases := []struct {
		name           string
		path           string
		expectedStocks []int32
	}{
		{
			name:           "by product",
			path:           fmt.Sprintf("%s/product/%d", inventoryURL, laptop.ID),
			expectedStocks: []int32{5, 500},
		},
		{
			name:           "combined criteria",
			path:           fmt.Sprintf("%s/search?productId=%d&minStock=10", inventoryURL, laptop.ID),
			expectedStocks: []int32{500},
		},
		{
			name:           "stock range",
			path:           inventoryURL + "/search/stock-range?minStock=10&maxStock=100",
			expectedStocks: []int32{50},
		},
		{
			name:           "minimum stock is strict",
			path:           inventoryURL + "/search/minimum-stock?minStock=50",
			expectedStocks: []int32{500},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := doRequest(t, server, http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, "%s", data)
			var list []inventoryResponse
			require.NoError(t, json.Unmarshal(data, &list))
			stocks := make([]int32, 0, len(list))
			for _, inv := range list {
				stocks = append(stocks, inv.CurrentStock)
			}
			assert.Equal(t, tc.expectedStocks, stocks)
		})
	}
}

func Test_HealthCheck(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doRequest(t, server, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
