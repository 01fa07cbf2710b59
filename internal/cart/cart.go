// Package cart holds the per-session shopping cart, the single source of
// truth for an in-progress order.
package cart

import (
	"sync"
	"time"

	"github.com/oceancatch/fishhub/internal/domain"
)

// Line is one distinct product+size combination and its quantity.
// Uniqueness is keyed by (ProductID, Size); adding the same pair again
// merges into the existing line.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is the order-in-progress for one session. All methods are safe
// for the session's interleaved request handlers.
type Cart struct {
	mu        sync.Mutex
	lines     []Line
	updatedAt time.Time
}

func New() *Cart {
	return &Cart{updatedAt: time.Now()}
}

func (c *Cart) touch() {
	c.updatedAt = time.Now()
}

// UpdatedAt returns the time of the last mutation, used by the idle sweep.
func (c *Cart) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

func (c *Cart) findLine(productID, size string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Size == size {
			return i
		}
	}
	return -1
}

// AddItem puts quantity units of the product into the cart, merging into
// an existing (product, size) line when present. Unavailable products
// are a silent no-op; a quantity below 1 is raised to 1. Returns the
// resulting line count.
func (c *Cart) AddItem(p domain.Product, quantity int, size string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !p.Available {
		return len(c.lines)
	}
	if quantity < 1 {
		quantity = 1
	}
	if i := c.findLine(p.ID, size); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Size:      size,
			Price:     p.Price,
			Unit:      p.Unit,
			Image:     p.Image,
			Quantity:  quantity,
		})
	}
	c.touch()
	return len(c.lines)
}

// UpdateQuantity sets the quantity of the (productID, size) line, or
// removes the line when quantity drops to zero or below. No-op when the
// line is absent.
func (c *Cart) UpdateQuantity(productID, size string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.findLine(productID, size)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity = quantity
	}
	c.touch()
}

// RemoveItem deletes the (productID, size) line. Idempotent.
func (c *Cart) RemoveItem(productID, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.findLine(productID, size); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		c.touch()
	}
}

// Clear empties the cart, used after a successful order submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.touch()
}

// Lines returns a snapshot copy of the cart lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// TotalItems sums quantities across all lines. Recomputed on every call.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice sums price*quantity across all lines. Recomputed on every
// call, never cached.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}
