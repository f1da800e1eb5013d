package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/orders"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

type OrderHandler struct {
	Orders    *orders.Registry
	Sessions  *session.Manager
	Templates *TemplateCache
}

type orderItemView struct {
	models.OrderItem
	ImageURL string
	Broken   bool
}

type orderView struct {
	models.Order
	DisplayNo      string
	Style          orders.StatusStyle
	Cancellable    bool
	CancelInFlight bool
	Expanded       bool
	Subtotal       float64
	Items          []orderItemView
}

// vmFor resolves the session user and their order view-model. A missing user
// id means a half-authenticated session; bounce to the shop.
func (h *OrderHandler) vmFor(w http.ResponseWriter, r *http.Request) (*orders.ViewModel, int64, bool) {
	userID, ok := h.Sessions.UserID(r)
	if !ok {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Please log in again."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return nil, 0, false
	}
	return h.Orders.For(userID), userID, true
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	vm, userID, ok := h.vmFor(w, r)
	if !ok {
		return
	}

	if err := vm.LoadOrders(r.Context(), h.Sessions.Token(r), userID); err != nil {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not load your orders. Please try again."})
	}

	tmpl := h.Templates.Get("my_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	expanded := vm.Expanded()
	list := vm.Orders()
	views := make([]orderView, 0, len(list))
	for _, o := range list {
		view := orderView{
			Order:          o,
			DisplayNo:      fmt.Sprintf("#%d", o.OrderID),
			Style:          orders.StyleFor(o.OrderStatus),
			Cancellable:    orders.IsCancellable(o.OrderStatus),
			CancelInFlight: vm.CancelInFlight(o.OrderID),
			Expanded:       o.OrderID == expanded,
			Subtotal:       orders.Subtotal(o),
		}
		if view.Expanded {
			for _, item := range o.Items {
				imageURL := ""
				if len(item.Images) > 0 {
					imageURL = vm.ImageURL(item.Images[0])
				}
				view.Items = append(view.Items, orderItemView{
					OrderItem: item,
					ImageURL:  imageURL,
					Broken:    vm.ImageBroken(item.ProductID),
				})
			}
		}
		views = append(views, view)
	}

	data := map[string]interface{}{
		"Orders":    views,
		"Pending":   vm.Pending(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

// ToggleExpand expands or collapses one order's line items.
func (h *OrderHandler) ToggleExpand(w http.ResponseWriter, r *http.Request) {
	vm, _, ok := h.vmFor(w, r)
	if !ok {
		return
	}
	orderID, err := strconv.ParseInt(r.FormValue("order_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	vm.ToggleExpand(orderID)
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

// RequestCancel opens the confirmation prompt for one order.
func (h *OrderHandler) RequestCancel(w http.ResponseWriter, r *http.Request) {
	vm, _, ok := h.vmFor(w, r)
	if !ok {
		return
	}
	orderID, err := strconv.ParseInt(r.FormValue("order_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	vm.RequestCancel(orderID, fmt.Sprintf("#%d", orderID))
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

// ConfirmCancel executes the pending cancellation.
func (h *OrderHandler) ConfirmCancel(w http.ResponseWriter, r *http.Request) {
	vm, userID, ok := h.vmFor(w, r)
	if !ok {
		return
	}

	if vm.Pending() == nil {
		http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
		return
	}

	err := vm.ConfirmCancel(r.Context(), h.Sessions.Token(r), userID)
	switch {
	case err == nil:
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "success", Message: "Order cancelled successfully."})
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: apiErr.Message})
		} else {
			h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not cancel the order. Please try again."})
		}
	}
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

// DismissCancel closes the prompt without calling the platform.
func (h *OrderHandler) DismissCancel(w http.ResponseWriter, r *http.Request) {
	vm, _, ok := h.vmFor(w, r)
	if !ok {
		return
	}
	vm.DismissCancel()
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

// ImageFailed records a broken product image so later renders show the
// placeholder.
func (h *OrderHandler) ImageFailed(w http.ResponseWriter, r *http.Request) {
	vm, _, ok := h.vmFor(w, r)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	vm.MarkImageBroken(productID)
	w.WriteHeader(http.StatusNoContent)
}
