package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oceancatch/fishhub/internal/order"
	"github.com/oceancatch/fishhub/internal/webserver"
	"github.com/oceancatch/fishhub/pkg/metrics"

	"github.com/pkg/errors"
)

// registerOrderRoutes registers the checkout endpoints.
func registerOrderRoutes() {
	webserver.ApiGET("/storefront/order", getOrderState)
	webserver.ApiPOST("/storefront/order", submitOrder)
}

// getOrderState reports the checkout state alongside the cart view.
// Entering the order page with an empty cart after a completed checkout
// starts the session over at idle.
func getOrderState(c echo.Context) error {
	ct := sessionCart(c)
	wf := sessionWorkflow(c)

	state, lastErr := wf.State()
	if state == order.StateSubmitted && ct.Len() == 0 {
		wf.Reset()
		state, lastErr = wf.State()
	}

	return ok(c, map[string]interface{}{
		"state": state,
		"error": lastErr,
		"cart":  viewOf(ct),
	})
}

// submitOrder runs the checkout workflow for the caller's session.
func submitOrder(c echo.Context) error {
	var form order.Form
	if err := c.Bind(&form); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order form", err.Error())
	}

	ct := sessionCart(c)
	wf := sessionWorkflow(c)

	err := wf.Submit(c.Request().Context(), form, ct)
	if err == nil {
		metrics.IncrCounter("storefront_orders_submitted", 1)
		state, _ := wf.State()
		return ok(c, map[string]interface{}{
			"state": state,
			"cart":  viewOf(ct),
		})
	}

	var validationErr *order.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"code":    "VALIDATION_ERROR",
			"message": "Please correct the highlighted fields",
			"errors":  validationErr.Fields,
		})
	}

	if errors.Is(err, order.ErrEmptyCart) {
		return fail(c, http.StatusBadRequest, "ORDER_EMPTY", "Your order is empty", nil)
	}

	if errors.Is(err, order.ErrSubmissionInFlight) {
		return fail(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT",
			"An order submission is already in progress", nil)
	}

	// endpoint/transport failure: cart and form survive for a manual retry
	metrics.IncrCounter("storefront_orders_failed", 1)
	state, lastErr := wf.State()
	return c.JSON(http.StatusBadGateway, map[string]interface{}{
		"success": false,
		"code":    "SUBMIT_FAILED",
		"message": lastErr,
		"state":   state,
		"cart":    viewOf(ct),
	})
}
