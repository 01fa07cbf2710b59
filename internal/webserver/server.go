// Package webserver hosts the echo instance and the route registry the
// API handler packages register themselves into.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/app"
)

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	api    *echo.Group
}

var server *WebServer

// Init builds the echo instance with the shared middleware chain. Must
// run before any handler package registers routes.
func Init(appCtx app.AppContext) *WebServer {
	server = &WebServer{appCtx: appCtx, root: echo.New()}
	server.root.Pre(middleware.RemoveTrailingSlash())
	server.root.HideBanner = true
	server.root.HTTPErrorHandler = errorHandler
	server.root.Use(middleware.Recover())
	server.root.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	// browser storefronts call the API cross-origin; accept any origin
	// and answer preflight permissively
	server.root.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	server.root.Use(session.Middleware(sessions.NewCookieStore([]byte(appCtx.Config().Web.Secret))))
	server.root.Use(requestLogger())
	server.root.Use(injectAppContext(appCtx))
	server.api = server.root.Group("/api")
	return server
}

// errorHandler keeps unexpected failures inside the JSON envelope so no
// request ever surfaces a bare stack trace.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Internal server error"
	if he, isHTTP := err.(*echo.HTTPError); isHTTP {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	} else {
		zap.L().Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	}
	_ = c.JSON(code, map[string]interface{}{
		"success": false,
		"code":    "INTERNAL_ERROR",
		"message": message,
	})
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	})
}

// injectAppContext makes the application context and database handle
// reachable from any handler via the echo context.
func injectAppContext(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("app", appCtx)
			c.Set("db", appCtx.DB())
			return next(c)
		}
	}
}

// Listen blocks serving the configured address.
func Listen() error {
	cfg := server.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("listen", addr))
	return server.root.Start(addr)
}

// Shutdown stops the listener (used by tests and signal handling).
func Shutdown() error {
	return server.root.Close()
}

// Echo exposes the root instance for tests.
func Echo() *echo.Echo {
	return server.root
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}
