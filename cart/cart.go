// Package cart holds the per-session order state: the menu the customer is
// ordering from, their chosen quantities, and the applied promo code. Every
// screen that prices an order goes through this one holder so the arithmetic
// cannot diverge.
package cart

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"delivery-checkout-system/pricing"
	"delivery-checkout-system/promo"
)

// ErrUnknownItem is returned for quantity changes against an id that is not
// on the menu.
var ErrUnknownItem = errors.New("item not on menu")

// Cart is single-threaded by design: it is owned by one checkout session and
// every mutation fully resolves before the next is handled.
type Cart struct {
	menu       map[string]pricing.LineItem
	quantities map[string]int
	fees       pricing.FeeSchedule
	catalog    promo.Catalog
	applied    *promo.PromoCode
}

// New builds an empty cart over a menu. Item quantities on the menu entries
// are ignored; the cart tracks quantities itself.
func New(menu []pricing.LineItem, fees pricing.FeeSchedule, catalog promo.Catalog) *Cart {
	m := make(map[string]pricing.LineItem, len(menu))
	for _, item := range menu {
		item.Quantity = 0
		m[item.ID] = item
	}
	return &Cart{
		menu:       m,
		quantities: make(map[string]int),
		fees:       fees,
		catalog:    catalog,
	}
}

// Adjust applies a quantity delta to an item, flooring at zero. At zero the
// item leaves the active set. Returns the resulting quantity.
func (c *Cart) Adjust(itemID string, delta int) (int, error) {
	if _, ok := c.menu[itemID]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	next := pricing.AdjustQuantity(c.quantities[itemID], delta)
	c.setQuantity(itemID, next)
	return next, nil
}

// SetQuantity replaces an item's quantity outright. Negative quantities are
// rejected with pricing.ErrInvalidQuantity.
func (c *Cart) SetQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return pricing.ErrInvalidQuantity
	}
	if _, ok := c.menu[itemID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	c.setQuantity(itemID, quantity)
	return nil
}

func (c *Cart) setQuantity(itemID string, quantity int) {
	if quantity == 0 {
		delete(c.quantities, itemID)
		return
	}
	c.quantities[itemID] = quantity
}

// ApplyPromo matches a user-entered code against the catalog and checks its
// eligibility at the current subtotal. On success the promo sticks to the
// cart; at most one promo applies per order, so a second apply replaces the
// first. Eligibility is re-evaluated on every Summary call, failing closed
// to a zero discount if quantities later drop below the minimum.
func (c *Cart) ApplyPromo(code string, now time.Time) error {
	p, err := c.catalog.Find(code)
	if err != nil {
		return err
	}
	if err := p.Eligible(c.Summary(now).Subtotal, now); err != nil {
		return err
	}
	c.applied = &p
	return nil
}

// ClearPromo removes the applied promo, if any.
func (c *Cart) ClearPromo() {
	c.applied = nil
}

// AppliedPromo returns the applied promo, or nil.
func (c *Cart) AppliedPromo() *promo.PromoCode {
	return c.applied
}

// Items returns the active line items ordered by id.
func (c *Cart) Items() []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(c.quantities))
	for id, qty := range c.quantities {
		item := c.menu[id]
		item.Quantity = qty
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Summary recomputes the order summary from scratch off the current
// quantities, fee schedule and applied promo.
func (c *Cart) Summary(now time.Time) pricing.OrderSummary {
	items := make(map[string]pricing.LineItem, len(c.quantities))
	for id, qty := range c.quantities {
		item := c.menu[id]
		item.Quantity = qty
		items[id] = item
	}
	return pricing.ComputeSummary(items, c.fees, c.applied, now)
}
