package storeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/oceancatch/fishhub/internal/domain"
	"github.com/oceancatch/fishhub/internal/webserver"
	"github.com/oceancatch/fishhub/pkg/common"

	"github.com/pkg/errors"
)

type productPayload struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	Price           float64  `json:"price"`
	Unit            string   `json:"unit"`
	Category        string   `json:"category"`
	Available       bool     `json:"available"`
	Sizes           []string `json:"sizes"`
	Image           string   `json:"image"`
}

// registerProductRoutes registers the storefront catalog reads and the
// operator CRUD endpoints.
func registerProductRoutes() {
	webserver.ApiGET("/storefront/products", listProducts)
	webserver.ApiGET("/storefront/products/featured", featuredProducts)
	webserver.ApiGET("/storefront/products/:id", getProduct)
	webserver.ApiPOST("/admin/products", createProduct)
	webserver.ApiPUT("/admin/products/:id", updateProduct)
	webserver.ApiDELETE("/admin/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{})

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" && category != "all" {
		if !domain.ValidCategory(category) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown category", nil)
		}
		db = db.Where("category = ?", category)
	}

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if db.Dialector.Name() == "postgres" {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order("name ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

// featuredProducts returns the first N available products for the
// landing page; N comes from the storefront settings.
func featuredProducts(c echo.Context) error {
	limit := GetApp(c).GetSettingsInt64Value("storefront", "featured_limit")
	if limit <= 0 {
		limit = 4
	}

	var rows []domain.Product
	if err := GetDB(c).Where("available = ?", true).
		Order("name ASC").Limit(int(limit)).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	var p domain.Product
	err := GetDB(c).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// fallback payload with an escape hatch rather than a hard failure
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success":  false,
			"code":     "NOT_FOUND",
			"message":  "Product not found",
			"back_url": "/products",
		})
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func validateProductPayload(p *productPayload) (string, bool) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return "Name is required", false
	}
	if !domain.ValidCategory(p.Category) {
		return "Category must be one of fresh, frozen, smoked, dried", false
	}
	if p.Price < 0 {
		return "Price must not be negative", false
	}
	for i := range p.Sizes {
		p.Sizes[i] = strings.TrimSpace(p.Sizes[i])
		if p.Sizes[i] == "" {
			return "Size labels must not be empty", false
		}
	}
	return "", true
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	id := common.Slugify(payload.Name)
	if id == "" {
		id = common.UUID()
	}

	now := time.Now()
	p := domain.Product{
		ID:              id,
		Name:            payload.Name,
		Description:     strings.TrimSpace(payload.Description),
		LongDescription: strings.TrimSpace(payload.LongDescription),
		Price:           payload.Price,
		Unit:            strings.TrimSpace(payload.Unit),
		Category:        payload.Category,
		Available:       payload.Available,
		Sizes:           payload.Sizes,
		Image:           strings.TrimSpace(payload.Image),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p.Name = payload.Name
	p.Description = strings.TrimSpace(payload.Description)
	p.LongDescription = strings.TrimSpace(payload.LongDescription)
	p.Price = payload.Price
	p.Unit = strings.TrimSpace(payload.Unit)
	p.Category = payload.Category
	p.Available = payload.Available
	p.Sizes = payload.Sizes
	p.Image = strings.TrimSpace(payload.Image)
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
