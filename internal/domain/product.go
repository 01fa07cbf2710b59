package domain

import "time"

// Fish product categories shown as catalog filters.
const (
	CategoryFresh  = "fresh"
	CategoryFrozen = "frozen"
	CategorySmoked = "smoked"
	CategoryDried  = "dried"
)

// Categories lists every valid product category.
var Categories = []string{CategoryFresh, CategoryFrozen, CategorySmoked, CategoryDried}

// ValidCategory reports whether c is a known catalog category.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product is a catalog item. The storefront never mutates products; the
// admin API owns writes.
type Product struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Name            string    `gorm:"index" json:"name" form:"name"`
	Description     string    `gorm:"size:512" json:"description" form:"description"`
	LongDescription string    `gorm:"size:2048" json:"long_description" form:"long_description"`
	Price           float64   `json:"price" form:"price"` // unit price in main currency units
	Unit            string    `gorm:"size:32" json:"unit" form:"unit"` // display unit, e.g. "per lb"
	Category        string    `gorm:"size:32;index" json:"category" form:"category"`
	Available       bool      `json:"available" form:"available"`
	Sizes           []string  `gorm:"serializer:json" json:"sizes,omitempty" form:"sizes"`
	Image           string    `gorm:"size:1024" json:"image" form:"image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// HasSize reports whether size is one of the product's declared sizes.
// A size-less product only accepts the empty selection.
func (p Product) HasSize(size string) bool {
	if size == "" {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
