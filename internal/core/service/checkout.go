package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Checkout = (*Checkout)(nil)

// A Checkout walks cart → shipping → payment → confirmation.
//
// Totals are always derived from the current cart. Entering confirmation
// empties the cart and cannot be undone.
type Checkout struct {
	mu     sync.Mutex
	stage  domain.CheckoutStage
	order  *domain.Order
	cart   port.CartStore
	orders port.OrderPublisher
	now    func() time.Time
}

// NewCheckout returns a checkout at the cart stage. orders may be nil, then
// confirmed orders are not published anywhere.
func NewCheckout(cart port.CartStore, orders port.OrderPublisher) *Checkout {
	return &Checkout{
		stage:  domain.StageCart,
		cart:   cart,
		orders: orders,
		now:    time.Now,
	}
}

func (c *Checkout) Stage() domain.CheckoutStage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

func (c *Checkout) Entries() []domain.CartEntry {
	return c.cart.Entries()
}

func (c *Checkout) Totals() domain.Totals {
	return domain.ComputeTotals(c.cart.Entries())
}

// LastOrder returns the order confirmed in the current session.
func (c *Checkout) LastOrder() (domain.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return domain.Order{}, false
	}
	return *c.order, true
}

// Continue moves one stage forward. It is inert on an empty cart and at
// confirmation.
func (c *Checkout) Continue(ctx context.Context) domain.CheckoutStage {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.stage {
	case domain.StageCart:
		if len(c.cart.Entries()) != 0 {
			c.stage = domain.StageShipping
		}
	case domain.StageShipping:
		c.stage = domain.StagePayment
	case domain.StagePayment:
		c.confirm(ctx)
	}
	return c.stage
}

// Back allows shipping → cart and payment → shipping only.
func (c *Checkout) Back() domain.CheckoutStage {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.stage {
	case domain.StageShipping:
		c.stage = domain.StageCart
	case domain.StagePayment:
		c.stage = domain.StageShipping
	}
	return c.stage
}

// Restart begins a new checkout session at the cart stage.
func (c *Checkout) Restart() domain.CheckoutStage {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stage = domain.StageCart
	c.order = nil
	return c.stage
}

func (c *Checkout) Increase(ctx context.Context, productID int) error {
	const op = "Checkout.Increase"

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.editableEntry(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.cart.UpdateQuantity(ctx, productID, entry.Quantity+1)
	return nil
}

// Decrease lowers the quantity but never below 1.
func (c *Checkout) Decrease(ctx context.Context, productID int) error {
	const op = "Checkout.Decrease"

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.editableEntry(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if entry.Quantity <= 1 {
		return nil
	}
	c.cart.UpdateQuantity(ctx, productID, entry.Quantity-1)
	return nil
}

func (c *Checkout) Remove(ctx context.Context, productID int) error {
	const op = "Checkout.Remove"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != domain.StageCart {
		return fmt.Errorf("%s: %w", op, domain.ErrCartLocked)
	}
	c.cart.RemoveItem(ctx, productID)
	return nil
}

func (c *Checkout) editableEntry(productID int) (domain.CartEntry, error) {
	if c.stage != domain.StageCart {
		return domain.CartEntry{}, domain.ErrCartLocked
	}
	entry, ok := c.cart.Entry(productID)
	if !ok {
		return domain.CartEntry{}, domain.ErrProductNotFound
	}
	return entry, nil
}

// confirm must be called with mu held.
func (c *Checkout) confirm(ctx context.Context) {
	const op = "Checkout.confirm"
	log := slog.With("op", op)

	entries := c.cart.Entries()
	order := domain.Order{
		ID:       uuid.NewString(),
		Number:   fmt.Sprintf("ORD-%04d", rand.IntN(10000)),
		Entries:  entries,
		Totals:   domain.ComputeTotals(entries),
		PlacedAt: c.now(),
	}

	c.cart.ClearCart(ctx)
	c.stage = domain.StageConfirmation
	c.order = &order

	log.Info(
		"order confirmed",
		"orderID", order.ID,
		"number", order.Number,
		"total", domain.FormatPrice(order.Totals.Total),
	)

	if c.orders == nil {
		return
	}
	if err := c.orders.PublishOrder(ctx, order); err != nil {
		log.Error("failed to publish order", "orderID", order.ID, "err", err)
	}
}
