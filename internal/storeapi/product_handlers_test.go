package storeapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceancatch/fishhub/internal/domain"
)

func TestListProductsFiltersByCategory(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())
	seedProduct(t, a, domain.Product{
		ID: "smoked-mackerel", Name: "Smoked Mackerel", Price: 9.5,
		Category: domain.CategorySmoked, Available: true,
	})

	c, rec := newTestContext(a, http.MethodGet, "/api/storefront/products?category=smoked", "")
	require.NoError(t, listProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []domain.Product `json:"data"`
		Total int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "smoked-mackerel", resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodGet, "/api/storefront/products?category=canned", "")
	require.NoError(t, listProducts(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeaturedProductsOnlyAvailable(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())
	seedProduct(t, a, troutProduct()) // unavailable

	c, rec := newTestContext(a, http.MethodGet, "/api/storefront/products/featured", "")
	require.NoError(t, featuredProducts(c))

	var resp struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Available)
}

func TestGetProductNotFoundFallback(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodGet, "/api/storefront/products/no-such-fish", "")
	c.SetParamNames("id")
	c.SetParamValues("no-such-fish")
	require.NoError(t, getProduct(c))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/products", resp["back_url"], "fallback keeps a navigation escape hatch")
}

func TestCreateProductValidatesCategory(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodPost, "/api/admin/products",
		`{"name":"Canned Tuna","price":3.5,"category":"canned"}`)
	require.NoError(t, createProduct(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductSlugsID(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodPost, "/api/admin/products",
		`{"name":"Fresh Sea Bream","price":13.0,"unit":"per lb","category":"fresh","available":true}`)
	require.NoError(t, createProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fresh-sea-bream", resp.Data.ID)
}

func TestNotifyOrderLogsWhenUnconfigured(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	body := `{"fullName":"John Doe","phone":"123","email":"j@e.com","address":"Main St",
		"items":[{"name":"Fresh Atlantic Salmon","price":12.5,"quantity":2}],"total":25.0}`
	c, rec := newTestContext(a, http.MethodPost, "/api/notify/order", body)
	require.NoError(t, notifyOrder(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order received (logged)")
}

func TestNotifyOrderRejectsIncompletePayload(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodPost, "/api/notify/order", `{"fullName":"","items":[]}`)
	require.NoError(t, notifyOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
