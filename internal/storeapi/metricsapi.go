package storeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oceancatch/fishhub/internal/webserver"
	"github.com/oceancatch/fishhub/pkg/common"
	"github.com/oceancatch/fishhub/pkg/metrics"
)

func registerMetricsRoutes() {
	webserver.ApiGET("/admin/metrics/:name", getMetricSeries)
}

// getMetricSeries returns the stored data points of one metric for the
// requested window (default: last 24h).
func getMetricSeries(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Metric name is required", nil)
	}

	end := time.Now().Unix()
	start := end - 24*3600
	if s := c.QueryParam("start"); s != "" {
		start = common.ParseInt64(s, start)
	}
	if e := c.QueryParam("end"); e != "" {
		end = common.ParseInt64(e, end)
	}

	points, err := metrics.Select(name, start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metric", err.Error())
	}
	return ok(c, map[string]interface{}{
		"name":   name,
		"start":  start,
		"end":    end,
		"points": points,
	})
}
