package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/oceancatch/fishhub/config"
	"github.com/oceancatch/fishhub/internal/cart"
	"github.com/oceancatch/fishhub/internal/notify"
	"github.com/oceancatch/fishhub/internal/order"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CartProvider provides the session cart manager
type CartProvider interface {
	Carts() *cart.Manager
}

// OrderProvider provides the checkout workflow tracker
type OrderProvider interface {
	Orders() *order.Tracker
}

// MailerProvider provides the notification mailer
type MailerProvider interface {
	Mailer() *notify.Mailer
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	CartProvider
	OrderProvider
	MailerProvider

	// Application lifecycle methods
	MigrateDB() error
	InitDb()
	DropAll()
}
