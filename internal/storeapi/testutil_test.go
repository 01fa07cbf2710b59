package storeapi

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oceancatch/fishhub/config"
	"github.com/oceancatch/fishhub/internal/app"
	"github.com/oceancatch/fishhub/internal/cart"
	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/internal/notify"
	"github.com/oceancatch/fishhub/internal/order"
)

// stubNotifier lets checkout tests script the notification outcome.
type stubNotifier struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubNotifier) SendOrder(ctx context.Context, payload notify.OrderPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubNotifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// testApp is a minimal AppContext for handler tests.
type testApp struct {
	db     *gorm.DB
	cfg    *config.AppConfig
	carts  *cart.Manager
	orders *order.Tracker
	mailer *notify.Mailer
}

var _ app.AppContext = (*testApp)(nil)

func (a *testApp) DB() *gorm.DB                  { return a.db }
func (a *testApp) Config() *config.AppConfig     { return a.cfg }
func (a *testApp) Scheduler() *cron.Cron         { return nil }
func (a *testApp) Carts() *cart.Manager          { return a.carts }
func (a *testApp) Orders() *order.Tracker        { return a.orders }
func (a *testApp) Mailer() *notify.Mailer        { return a.mailer }
func (a *testApp) MigrateDB() error              { return a.db.Migrator().AutoMigrate(domain.Tables...) }
func (a *testApp) InitDb()                       {}
func (a *testApp) DropAll()                      {}
func (a *testApp) GetSettingsStringValue(category, key string) string { return "" }
func (a *testApp) GetSettingsInt64Value(category, key string) int64 {
	if category == "storefront" && key == "featured_limit" {
		return 4
	}
	return 0
}
func (a *testApp) GetSettingsBoolValue(category, key string) bool { return false }

func newTestApp(t *testing.T, notifier order.Notifier) *testApp {
	t.Helper()

	// one named in-memory database per test so seeds never collide
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	a := &testApp{
		db:     db,
		cfg:    config.DefaultAppConfig,
		carts:  cart.NewManager(time.Hour),
		orders: order.NewTracker(notifier),
		mailer: notify.NewMailer(config.SmtpConfig{}), // unconfigured: logs and succeeds
	}
	require.NoError(t, a.MigrateDB())
	return a
}

func seedProduct(t *testing.T, a *testApp, p domain.Product) {
	t.Helper()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	require.NoError(t, a.db.Create(&p).Error)
}

func salmonProduct() domain.Product {
	return domain.Product{
		ID:        "fresh-atlantic-salmon",
		Name:      "Fresh Atlantic Salmon",
		Price:     12.5,
		Unit:      "per lb",
		Category:  domain.CategoryFresh,
		Available: true,
		Sizes:     []string{"Small Fillet", "Large Fillet"},
	}
}

func troutProduct() domain.Product {
	return domain.Product{
		ID:        "fresh-rainbow-trout",
		Name:      "Rainbow Trout",
		Price:     8.75,
		Unit:      "per lb",
		Category:  domain.CategoryFresh,
		Available: false,
	}
}

// newTestContext builds an echo context wired the way the webserver
// middleware would wire it, pinned to one session id.
func newTestContext(a *testApp, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("app", app.AppContext(a))
	c.Set("db", a.db)
	c.Set("sid", "test-session")
	return c, rec
}
