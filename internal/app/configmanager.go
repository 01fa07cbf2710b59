package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/domain"
)

const settingsCacheTTL = 30 * time.Second

// ConfigManager reads runtime settings from the sys_config table with a
// short-lived cache so handlers can consult settings on every request.
type ConfigManager struct {
	app      DBProvider
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewConfigManager(app DBProvider) *ConfigManager {
	return &ConfigManager{app: app, cache: make(map[string]string)}
}

func (m *ConfigManager) load() {
	var rows []domain.SysConfig
	if err := m.app.DB().Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return
	}
	fresh := make(map[string]string, len(rows))
	for _, r := range rows {
		fresh[r.Type+"."+r.Name] = r.Value
	}
	m.cache = fresh
	m.loadedAt = time.Now()
}

func (m *ConfigManager) value(category, key string) string {
	m.mu.RLock()
	expired := time.Since(m.loadedAt) > settingsCacheTTL
	v, found := m.cache[category+"."+key]
	m.mu.RUnlock()
	if !expired && found {
		return v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if time.Since(m.loadedAt) > settingsCacheTTL {
		m.load()
	}
	return m.cache[category+"."+key]
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.value(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.value(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.value(category, key))
}

// SetValue writes a setting and invalidates the cache.
func (m *ConfigManager) SetValue(category, key, value string) error {
	var row domain.SysConfig
	err := m.app.DB().Where("type = ? and name = ?", category, key).First(&row).Error
	if err != nil {
		row = domain.SysConfig{Type: category, Name: key, Value: value}
		err = m.app.DB().Create(&row).Error
	} else {
		err = m.app.DB().Model(&domain.SysConfig{}).
			Where("id = ?", row.ID).Update("value", value).Error
	}
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.loadedAt = time.Time{}
	m.mu.Unlock()
	return nil
}
