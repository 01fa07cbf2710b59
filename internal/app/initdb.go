package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/internal/domain"
)

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{Key: "storefront.featured_limit", Default: "4", Description: "Number of featured products on the landing page"},
	{Key: "storefront.cart_ttl_hours", Default: "24", Description: "Hours an untouched cart survives before being swept"},
	{Key: "storefront.open_hours", Default: "Mon-Sat, 6 AM - 6 PM", Description: "Displayed market opening hours"},
	{Key: "notify.subject_prefix", Default: "", Description: "Optional prefix for order notification subjects"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		category, name := splitSettingKey(schema.Key)
		if category == "" {
			zap.L().Warn("invalid setting key format", zap.String("key", schema.Key))
			continue
		}

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized setting",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

func splitSettingKey(key string) (category, name string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:]
		}
	}
	return "", key
}

// checkProducts seeds the default fish catalog on first start.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{
			ID:          "fresh-atlantic-salmon",
			Name:        "Fresh Atlantic Salmon",
			Description: "Rich, buttery fillets cut from today's delivery.",
			LongDescription: "Sustainably farmed Atlantic salmon, delivered whole each " +
				"morning and filleted in-house. Excellent grilled, baked or cured.",
			Price:     12.5,
			Unit:      "per lb",
			Category:  domain.CategoryFresh,
			Available: true,
			Sizes:     []string{"Small Fillet", "Large Fillet"},
			Image:     "/images/salmon.jpg",
		},
		{
			ID:          "fresh-sea-bass",
			Name:        "Fresh Sea Bass",
			Description: "Delicate white fish, whole or filleted.",
			LongDescription: "Line-caught sea bass with firm white flesh and a clean, " +
				"sweet flavour. Sold whole; we clean and fillet on request.",
			Price:     15.0,
			Unit:      "per lb",
			Category:  domain.CategoryFresh,
			Available: true,
			Sizes:     []string{"Whole", "Filleted"},
			Image:     "/images/sea-bass.jpg",
		},
		{
			ID:          "fresh-rainbow-trout",
			Name:        "Rainbow Trout",
			Description: "Local farm trout, pan-ready.",
			Price:       8.75,
			Unit:        "per lb",
			Category:    domain.CategoryFresh,
			Available:   false,
			Image:       "/images/trout.jpg",
		},
		{
			ID:          "frozen-tuna-steaks",
			Name:        "Frozen Tuna Steaks",
			Description: "Sashimi-grade yellowfin, flash frozen at sea.",
			Price:       18.0,
			Unit:        "per lb",
			Category:    domain.CategoryFrozen,
			Available:   true,
			Sizes:       []string{"6 oz", "10 oz"},
			Image:       "/images/tuna.jpg",
		},
		{
			ID:          "frozen-shrimp",
			Name:        "Frozen Jumbo Shrimp",
			Description: "Peeled and deveined, ready to cook.",
			Price:       11.25,
			Unit:        "per lb",
			Category:    domain.CategoryFrozen,
			Available:   true,
			Image:       "/images/shrimp.jpg",
		},
		{
			ID:          "smoked-mackerel",
			Name:        "Smoked Mackerel",
			Description: "Oak-smoked over 12 hours, rich and savoury.",
			Price:       9.5,
			Unit:        "per lb",
			Category:    domain.CategorySmoked,
			Available:   true,
			Image:       "/images/mackerel.jpg",
		},
		{
			ID:          "smoked-salmon",
			Name:        "Cold Smoked Salmon",
			Description: "Thin-sliced, traditional cold smoke.",
			Price:       22.0,
			Unit:        "per lb",
			Category:    domain.CategorySmoked,
			Available:   true,
			Sizes:       []string{"4 oz Pack", "8 oz Pack"},
			Image:       "/images/smoked-salmon.jpg",
		},
		{
			ID:          "dried-anchovies",
			Name:        "Dried Anchovies",
			Description: "Sun-dried, perfect for stocks and snacking.",
			Price:       6.0,
			Unit:        "per lb",
			Category:    domain.CategoryDried,
			Available:   true,
			Image:       "/images/anchovies.jpg",
		},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("id = ?", p.ID).Count(&count)
		if count == 0 {
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("id", p.ID), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("id", p.ID))
			}
		}
	}
}
