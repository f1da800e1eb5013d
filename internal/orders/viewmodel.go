// Package orders is the view-model behind the My Orders page: loading and
// ordering the list, deriving per-order display state, and running the
// confirm-then-cancel flow.
package orders

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

// API is the slice of the platform client this view-model needs.
type API interface {
	UserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error)
	CancelOrder(ctx context.Context, token string, orderID, userID int64) error
}

// PendingCancel holds the order waiting in the confirmation prompt.
type PendingCancel struct {
	OrderID   int64
	DisplayNo string
}

// ViewModel carries one user's order-page state across requests. Methods are
// safe for the concurrent requests one user's tabs can produce.
type ViewModel struct {
	api       API
	assetBase string

	mu       sync.Mutex
	orders   []models.Order
	expanded int64
	pending  *PendingCancel
	inflight map[int64]bool
	broken   map[int64]bool // product ids whose images failed to load; never shrinks
}

func NewViewModel(api API, assetBase string) *ViewModel {
	return &ViewModel{
		api:       api,
		assetBase: strings.TrimRight(assetBase, "/"),
		inflight:  make(map[int64]bool),
		broken:    make(map[int64]bool),
	}
}

// LoadOrders refreshes the list. On any failure the list is empty and the
// error is returned for the caller to surface as a flash; nothing is thrown
// further.
func (vm *ViewModel) LoadOrders(ctx context.Context, token string, userID int64) error {
	fetched, err := vm.api.UserOrders(ctx, token, userID)
	if err != nil {
		slog.Error("Failed to fetch orders", "user_id", userID, "error", err)
		vm.mu.Lock()
		vm.orders = nil
		vm.mu.Unlock()
		return err
	}

	// Newest first; stable so server order survives equal timestamps.
	sort.SliceStable(fetched, func(i, j int) bool {
		return models.ParseWhen(fetched[i].OrderDate).After(models.ParseWhen(fetched[j].OrderDate))
	})

	vm.mu.Lock()
	vm.orders = fetched
	vm.mu.Unlock()
	return nil
}

func (vm *ViewModel) Orders() []models.Order {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.Order, len(vm.orders))
	copy(out, vm.orders)
	return out
}

// ToggleExpand expands the given order, collapsing whatever was expanded
// before. Toggling the expanded order collapses it.
func (vm *ViewModel) ToggleExpand(orderID int64) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.expanded == orderID {
		vm.expanded = 0
		return
	}
	vm.expanded = orderID
}

func (vm *ViewModel) Expanded() int64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.expanded
}

// RequestCancel opens the confirmation prompt. It refuses orders that are not
// cancellable or already have a cancellation in flight.
func (vm *ViewModel) RequestCancel(orderID int64, displayNo string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.inflight[orderID] {
		return
	}
	for _, o := range vm.orders {
		if o.OrderID == orderID && IsCancellable(o.OrderStatus) {
			vm.pending = &PendingCancel{OrderID: orderID, DisplayNo: displayNo}
			return
		}
	}
}

func (vm *ViewModel) Pending() *PendingCancel {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pending
}

func (vm *ViewModel) DismissCancel() {
	vm.mu.Lock()
	vm.pending = nil
	vm.mu.Unlock()
}

// ConfirmCancel runs the pending cancellation. Success flips only that
// order's status to CANCELLED; every outcome funnels through the same
// cleanup, so the prompt closes and the in-flight marker clears regardless.
func (vm *ViewModel) ConfirmCancel(ctx context.Context, token string, userID int64) error {
	vm.mu.Lock()
	if vm.pending == nil {
		vm.mu.Unlock()
		return nil
	}
	orderID := vm.pending.OrderID
	if vm.inflight[orderID] {
		vm.mu.Unlock()
		return nil
	}
	vm.inflight[orderID] = true
	vm.mu.Unlock()

	err := vm.api.CancelOrder(ctx, token, orderID, userID)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	defer func() {
		delete(vm.inflight, orderID)
		vm.pending = nil
	}()

	if err != nil {
		slog.Error("Order cancellation failed", "order_id", orderID, "error", err)
		return err
	}

	for i := range vm.orders {
		if vm.orders[i].OrderID == orderID {
			vm.orders[i].OrderStatus = StatusCancelled
			break
		}
	}
	slog.Info("Order cancelled", "order_id", orderID, "user_id", userID)
	return nil
}

func (vm *ViewModel) CancelInFlight(orderID int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.inflight[orderID]
}

// ImageURL resolves a relative image path against the configured asset
// origin. Absolute URLs pass through untouched.
func (vm *ViewModel) ImageURL(rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return vm.assetBase + "/" + strings.TrimLeft(rel, "/")
}

// MarkImageBroken records a failed image load. The set only grows; once a
// product shows the placeholder it keeps showing it.
func (vm *ViewModel) MarkImageBroken(productID int64) {
	vm.mu.Lock()
	vm.broken[productID] = true
	vm.mu.Unlock()
}

func (vm *ViewModel) ImageBroken(productID int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.broken[productID]
}

// Subtotal sums the server-provided line totals. It is shown next to the
// server's finalAmount and the two may legitimately differ.
func Subtotal(o models.Order) float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.TotalPrice
	}
	return sum
}

// Registry hands out one ViewModel per user so expansion, prompt, and
// broken-image state survive across page loads.
type Registry struct {
	mu        sync.Mutex
	vms       map[int64]*ViewModel
	api       API
	assetBase string
}

func NewRegistry(api API, assetBase string) *Registry {
	return &Registry{
		vms:       make(map[int64]*ViewModel),
		api:       api,
		assetBase: assetBase,
	}
}

func (r *Registry) For(userID int64) *ViewModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	vm, ok := r.vms[userID]
	if !ok {
		vm = NewViewModel(r.api, r.assetBase)
		r.vms[userID] = vm
	}
	return vm
}
