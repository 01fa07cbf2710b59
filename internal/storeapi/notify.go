package storeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oceancatch/fishhub/internal/notify"
	"github.com/oceancatch/fishhub/internal/webserver"
)

// registerNotifyRoutes registers the order notification endpoint. CORS
// preflight is answered permissively by the shared middleware so the
// endpoint is reachable from any browser origin.
func registerNotifyRoutes() {
	webserver.ApiPOST("/notify/order", notifyOrder)
}

// notifyOrder receives an assembled order payload and delivers it to the
// shop mailbox. Without an SMTP credential the order is logged and still
// acknowledged, so it is never lost.
func notifyOrder(c echo.Context) error {
	var payload notify.OrderPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, notify.Response{
			Success: false,
			Error:   "Unable to parse order payload",
		})
	}
	if strings.TrimSpace(payload.FullName) == "" || len(payload.Items) == 0 {
		return c.JSON(http.StatusBadRequest, notify.Response{
			Success: false,
			Error:   "Order payload is incomplete",
		})
	}

	mailer := GetApp(c).Mailer()
	if err := mailer.DeliverOrder(payload); err != nil {
		return c.JSON(http.StatusInternalServerError, notify.Response{
			Success: false,
			Error:   "Failed to send email",
		})
	}

	message := "Order email sent"
	if !mailer.Configured() {
		message = "Order received (logged)"
	}
	return c.JSON(http.StatusOK, notify.Response{Success: true, Message: message})
}
