package storeapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartResponse struct {
	Success bool     `json:"success"`
	Data    cartView `json:"data"`
}

func decodeCart(t *testing.T, body []byte) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestAddCartItem(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())

	c, rec := newTestContext(a, http.MethodPost, "/api/storefront/cart/items",
		`{"product_id":"fresh-atlantic-salmon","quantity":2,"size":"Small Fillet"}`)
	require.NoError(t, addCartItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec.Body.Bytes())
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, 2, resp.Data.TotalItems)
	assert.InDelta(t, 25.0, resp.Data.TotalPrice, 1e-9)
}

func TestAddCartItemDefaultsToFirstSize(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())

	c, rec := newTestContext(a, http.MethodPost, "/api/storefront/cart/items",
		`{"product_id":"fresh-atlantic-salmon","quantity":1}`)
	require.NoError(t, addCartItem(c))

	resp := decodeCart(t, rec.Body.Bytes())
	require.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, "Small Fillet", resp.Data.Lines[0].Size)
}

func TestAddCartItemUnknownSizeRejected(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())

	c, rec := newTestContext(a, http.MethodPost, "/api/storefront/cart/items",
		`{"product_id":"fresh-atlantic-salmon","quantity":1,"size":"Gigantic"}`)
	require.NoError(t, addCartItem(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, a.carts.Get("test-session").Len())
}

func TestAddCartItemUnavailableProductIsSilentNoOp(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, troutProduct())

	c, rec := newTestContext(a, http.MethodPost, "/api/storefront/cart/items",
		`{"product_id":"fresh-rainbow-trout","quantity":3}`)
	require.NoError(t, addCartItem(c))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data.Lines)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})

	c, rec := newTestContext(a, http.MethodPost, "/api/storefront/cart/items",
		`{"product_id":"no-such-fish","quantity":1}`)
	require.NoError(t, addCartItem(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	seedProduct(t, a, salmonProduct())
	a.carts.Get("test-session").AddItem(salmonProduct(), 2, "Small Fillet")

	c, rec := newTestContext(a, http.MethodPut, "/api/storefront/cart/items",
		`{"product_id":"fresh-atlantic-salmon","size":"Small Fillet","quantity":0}`)
	require.NoError(t, updateCartItem(c))

	resp := decodeCart(t, rec.Body.Bytes())
	assert.Empty(t, resp.Data.Lines)
}

func TestRemoveAndClearCart(t *testing.T) {
	a := newTestApp(t, &stubNotifier{})
	ct := a.carts.Get("test-session")
	ct.AddItem(salmonProduct(), 1, "Small Fillet")
	ct.AddItem(salmonProduct(), 1, "Large Fillet")

	c, rec := newTestContext(a, http.MethodDelete,
		"/api/storefront/cart/items/fresh-atlantic-salmon?size=Small+Fillet", "")
	c.SetParamNames("productId")
	c.SetParamValues("fresh-atlantic-salmon")
	require.NoError(t, removeCartItem(c))

	resp := decodeCart(t, rec.Body.Bytes())
	require.Len(t, resp.Data.Lines, 1)
	assert.Equal(t, "Large Fillet", resp.Data.Lines[0].Size)

	c2, rec2 := newTestContext(a, http.MethodDelete, "/api/storefront/cart", "")
	require.NoError(t, clearCart(c2))
	resp2 := decodeCart(t, rec2.Body.Bytes())
	assert.Empty(t, resp2.Data.Lines)
	assert.Equal(t, 0, resp2.Data.TotalItems)
}
