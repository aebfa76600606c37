package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"seftali/internal/upstream"
)

var (
	ErrEmpty       = errors.New("cart is empty")
	ErrNotPositive = errors.New("quantity must be positive")
)

// Item is one client-owned cart line. Price stays nil until the backend
// starts sending prices; nil counts as zero in totals.
type Item struct {
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Submitter is the slice of the order service the cart needs on submit.
type Submitter interface {
	StartWorkingCopy(ctx context.Context) (*upstream.WorkingCopy, error)
	ReplaceWorkingCopyQuantities(ctx context.Context, id int64, items []upstream.QuantityPatch) (*upstream.WorkingCopy, error)
	SubmitWorkingCopy(ctx context.Context, id int64) error
}

// Cart is the ephemeral draft cart for one screen session. It lives only in
// memory and has exactly one logical writer, the owning session.
type Cart struct {
	items     map[int64]*Item
	order     []int64
	suggested map[int64]int
}

func New() *Cart {
	return &Cart{
		items:     make(map[int64]*Item),
		suggested: make(map[int64]int),
	}
}

// Seed fills the cart from the server draft. Only suggestions with a positive
// quantity become entries; every suggestion is remembered so a later Add can
// default to it.
func (c *Cart) Seed(suggestions []upstream.DraftSuggestion) {
	for _, s := range suggestions {
		c.suggested[s.ProductID] = s.SuggestedQty
		if s.SuggestedQty <= 0 {
			continue
		}
		c.put(&Item{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Quantity:    s.SuggestedQty,
			Price:       s.Price,
		})
	}
}

// Adjust adds delta to an existing entry's quantity, floored at zero; hitting
// zero deletes the entry. Adjusting an absent product is a no-op.
func (c *Cart) Adjust(productID int64, delta int) {
	item, ok := c.items[productID]
	if !ok {
		return
	}
	item.Quantity += delta
	if item.Quantity <= 0 {
		c.delete(productID)
	}
}

// SetQuantity parses raw as an integer; a failed parse or a value of zero or
// less removes the entry.
func (c *Cart) SetQuantity(productID int64, raw string) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty <= 0 {
		c.delete(productID)
		return
	}
	if item, ok := c.items[productID]; ok {
		item.Quantity = qty
	}
}

// Add puts a product into the cart explicitly. A nil qty defaults to the
// product's suggested quantity, or 1 when there is no suggestion. A
// non-positive qty is rejected and the cart is unchanged.
func (c *Cart) Add(product upstream.Product, qty *int, price *decimal.Decimal) error {
	resolved := 1
	if qty != nil {
		resolved = *qty
	} else if s, ok := c.suggested[product.ID]; ok && s > 0 {
		resolved = s
	}
	if resolved <= 0 {
		return ErrNotPositive
	}
	if item, ok := c.items[product.ID]; ok {
		item.Quantity = resolved
		return nil
	}
	c.put(&Item{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    resolved,
		Price:       price,
	})
	return nil
}

func (c *Cart) Remove(productID int64) {
	c.delete(productID)
}

// Submit turns the cart into an order: start a working copy, replace its
// items with the cart lines wholesale, then submit. The cart is cleared only
// after the whole chain succeeds; any failure leaves it intact for retry.
func (c *Cart) Submit(ctx context.Context, svc Submitter) error {
	if len(c.items) == 0 {
		return ErrEmpty
	}

	wc, err := svc.StartWorkingCopy(ctx)
	if err != nil {
		return fmt.Errorf("start working copy: %w", err)
	}

	patches := make([]upstream.QuantityPatch, 0, len(c.order))
	for _, id := range c.order {
		patches = append(patches, upstream.QuantityPatch{
			ProductID: id,
			Quantity:  c.items[id].Quantity,
		})
	}
	if _, err := svc.ReplaceWorkingCopyQuantities(ctx, wc.ID, patches); err != nil {
		return fmt.Errorf("replace items: %w", err)
	}

	if err := svc.SubmitWorkingCopy(ctx, wc.ID); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	c.items = make(map[int64]*Item)
	c.order = nil
	return nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Count is the number of distinct products.
func (c *Cart) Count() int {
	return len(c.items)
}

// TotalQuantity sums all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums quantity×price over all lines; a nil price counts as zero.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		if item.Price == nil {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) put(item *Item) {
	if _, ok := c.items[item.ProductID]; !ok {
		c.order = append(c.order, item.ProductID)
	}
	c.items[item.ProductID] = item
}

func (c *Cart) delete(productID int64) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
