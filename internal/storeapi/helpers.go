// Package storeapi registers the storefront HTTP API: catalog, session
// cart, checkout and the order notification endpoint.
package storeapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/oceancatch/fishhub/internal/app"
	"github.com/oceancatch/fishhub/internal/cart"
	"github.com/oceancatch/fishhub/internal/order"
	"github.com/oceancatch/fishhub/pkg/common"
)

const sessionName = "fishhub_session"

// InitRouter registers every storefront route. Call after webserver.Init.
func InitRouter() {
	registerProductRoutes()
	registerCartRoutes()
	registerOrderRoutes()
	registerNotifyRoutes()
	registerContactRoutes()
	registerMetricsRoutes()
}

// GetApp returns the application context injected by the webserver.
func GetApp(c echo.Context) app.AppContext {
	return c.Get("app").(app.AppContext)
}

// GetDB returns the request-scoped gorm handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get("db").(*gorm.DB)
}

// sessionID returns the stable id of the caller's cookie session,
// minting one on first contact. The id is memoized on the request so
// every helper in one request resolves the same session.
func sessionID(c echo.Context) string {
	if sid, _ := c.Get("sid").(string); sid != "" {
		return sid
	}

	sess, err := session.Get(sessionName, c)
	if err != nil || sess == nil {
		// corrupt or unreadable cookie: fall back to a throwaway id
		sid := common.UUID()
		c.Set("sid", sid)
		return sid
	}

	sid, _ := sess.Values["sid"].(string)
	if sid == "" {
		sid = common.UUID()
		sess.Values["sid"] = sid
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   7 * 24 * 3600,
			HttpOnly: true,
		}
		_ = sess.Save(c.Request(), c.Response())
	}
	c.Set("sid", sid)
	return sid
}

// sessionCart returns the caller's cart.
func sessionCart(c echo.Context) *cart.Cart {
	return GetApp(c).Carts().Get(sessionID(c))
}

// sessionWorkflow returns the caller's checkout workflow.
func sessionWorkflow(c echo.Context) *order.Workflow {
	return GetApp(c).Orders().Get(sessionID(c))
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// cartView is the cart state returned on every read and after every
// mutation so badges and summaries never show stale totals.
type cartView struct {
	Lines      []cart.Line `json:"lines"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func viewOf(ct *cart.Cart) cartView {
	return cartView{
		Lines:      ct.Lines(),
		TotalItems: ct.TotalItems(),
		TotalPrice: ct.TotalPrice(),
	}
}
