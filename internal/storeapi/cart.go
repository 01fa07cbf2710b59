package storeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/internal/webserver"

	"github.com/pkg/errors"
)

type cartItemPayload struct {
	ProductID string `json:"product_id" form:"product_id"`
	Size      string `json:"size" form:"size"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

// registerCartRoutes registers the session cart endpoints. Every
// mutation responds with the full cart view so the caller's badge and
// totals are always in sync.
func registerCartRoutes() {
	webserver.ApiGET("/storefront/cart", getCart)
	webserver.ApiPOST("/storefront/cart/items", addCartItem)
	webserver.ApiPUT("/storefront/cart/items", updateCartItem)
	webserver.ApiDELETE("/storefront/cart/items/:productId", removeCartItem)
	webserver.ApiDELETE("/storefront/cart", clearCart)
}

func getCart(c echo.Context) error {
	return ok(c, viewOf(sessionCart(c)))
}

func addCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	payload.ProductID = strings.TrimSpace(payload.ProductID)
	payload.Size = strings.TrimSpace(payload.Size)
	if payload.ProductID == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "product_id is required", nil)
	}

	var p domain.Product
	err := GetDB(c).Where("id = ?", payload.ProductID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	// sized products default to their first size when none is chosen
	if payload.Size == "" && len(p.Sizes) > 0 {
		payload.Size = p.Sizes[0]
	}
	if !p.HasSize(payload.Size) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown size for this product", nil)
	}

	ct := sessionCart(c)
	// unavailable products are a silent no-op, matching the storefront
	ct.AddItem(p, payload.Quantity, payload.Size)
	return ok(c, viewOf(ct))
}

func updateCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	payload.ProductID = strings.TrimSpace(payload.ProductID)
	if payload.ProductID == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "product_id is required", nil)
	}

	ct := sessionCart(c)
	ct.UpdateQuantity(payload.ProductID, strings.TrimSpace(payload.Size), payload.Quantity)
	return ok(c, viewOf(ct))
}

func removeCartItem(c echo.Context) error {
	productID := strings.TrimSpace(c.Param("productId"))
	size := strings.TrimSpace(c.QueryParam("size"))

	ct := sessionCart(c)
	ct.RemoveItem(productID, size)
	return ok(c, viewOf(ct))
}

func clearCart(c echo.Context) error {
	ct := sessionCart(c)
	ct.Clear()
	return ok(c, viewOf(ct))
}
