package store

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/tonguers/loja/internal/domain"
)

// Cart owns the ordered list of items the user intends to purchase. It is
// held purely in process memory: a new run starts with an empty cart.
// Insertion order is display order; duplicates are repeated entries, there
// is no quantity field.
type Cart struct {
	mu    sync.Mutex
	items []domain.CartItem

	bc broadcaster
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add appends the product to the cart under a freshly generated item ID,
// so adding the same product twice yields two distinct entries.
func (c *Cart) Add(p domain.Product) domain.CartItem {
	item := domain.CartItem{
		ID:    uuid.NewString(),
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.bc.notify()
	return item
}

// Remove deletes the first entry with the given item ID. Unknown IDs are
// ignored.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	removed := false
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()

	if removed {
		c.bc.notify()
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	cleared := len(c.items) > 0
	c.items = nil
	c.mu.Unlock()

	if cleared {
		c.bc.notify()
	}
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len reports the number of entries in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subscribe registers fn to run after every cart change. The returned
// function cancels the subscription.
func (c *Cart) Subscribe(fn func()) (cancel func()) {
	return c.bc.subscribe(fn)
}

// Subtotal sums the item prices and formats the result with two decimals.
// Each price string is reduced to the characters [0-9.-] and coerced with
// parseFloat semantics; unparseable prices count as zero, so a malformed
// "$-" contributes nothing. An empty cart yields "0.00".
func (c *Cart) Subtotal() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, item := range c.items {
		sum += parsePrice(item.Price)
	}
	return strconv.FormatFloat(sum, 'f', 2, 64)
}

// parsePrice strips everything outside [0-9.-] and converts the longest
// leading numeric prefix of the remainder, the way JS parseFloat would.
// No numeric prefix means zero.
func parsePrice(raw string) float64 {
	cleaned := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' {
			cleaned = append(cleaned, c)
		}
	}

	end := 0
	sawDot := false
	sawDigit := false
scan:
	for end < len(cleaned) {
		switch c := cleaned[end]; {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '-' && end == 0:
		case c == '.' && !sawDot:
			sawDot = true
		default:
			break scan
		}
		end++
	}
	if !sawDigit {
		return 0
	}

	value, err := strconv.ParseFloat(string(cleaned[:end]), 64)
	if err != nil {
		return 0
	}
	return value
}
