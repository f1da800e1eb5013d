package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

type fakeAPI struct {
	orders    []models.Order
	ordersErr error
	cancelErr error

	cancelCalls int
	lastOrderID int64
	lastUserID  int64
}

func (f *fakeAPI) UserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error) {
	return f.orders, f.ordersErr
}

func (f *fakeAPI) CancelOrder(ctx context.Context, token string, orderID, userID int64) error {
	f.cancelCalls++
	f.lastOrderID = orderID
	f.lastUserID = userID
	return f.cancelErr
}

func TestIsCancellable(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"PLACED", true},
		{"PROCESSING", true},
		{"CONFIRMED", true},
		{"placed", true},
		{"  Processing  ", true},
		{"SHIPPED", false},
		{"DELIVERED", false},
		{"CANCELLED", false},
		{"", false},
		{"UNKNOWN", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCancellable(tt.status))
		})
	}
}

func TestLoadOrdersSortsNewestFirst(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{
		{OrderID: 1, OrderDate: "2025-01-10T09:00:00Z"},
		{OrderID: 2, OrderDate: "2025-03-05T09:00:00Z"},
		{OrderID: 3, OrderDate: "2025-02-01"},
	}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))

	got := vm.Orders()
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].OrderID)
	assert.Equal(t, int64(3), got[1].OrderID)
	assert.Equal(t, int64(1), got[2].OrderID)
}

func TestLoadOrdersStableOnTies(t *testing.T) {
	// Equal and unparseable dates keep the server's relative order.
	api := &fakeAPI{orders: []models.Order{
		{OrderID: 1, OrderDate: "bogus"},
		{OrderID: 2, OrderDate: "bogus"},
		{OrderID: 3, OrderDate: "also bogus"},
	}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))

	got := vm.Orders()
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].OrderID)
	assert.Equal(t, int64(2), got[1].OrderID)
	assert.Equal(t, int64(3), got[2].OrderID)
}

func TestLoadOrdersFailureEmptiesList(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{{OrderID: 1}}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))
	require.Len(t, vm.Orders(), 1)

	api.ordersErr = errors.New("boom")
	assert.Error(t, vm.LoadOrders(context.Background(), "tok", 7))
	assert.Empty(t, vm.Orders())
}

func TestToggleExpand(t *testing.T) {
	vm := NewViewModel(&fakeAPI{}, "")
	vm.ToggleExpand(10)
	assert.Equal(t, int64(10), vm.Expanded())

	// Expanding another order collapses the first.
	vm.ToggleExpand(20)
	assert.Equal(t, int64(20), vm.Expanded())

	vm.ToggleExpand(20)
	assert.Equal(t, int64(0), vm.Expanded())
}

func TestRequestCancelRefusesNonCancellable(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{
		{OrderID: 1, OrderStatus: "SHIPPED"},
		{OrderID: 2, OrderStatus: "PLACED"},
	}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))

	vm.RequestCancel(1, "#1")
	assert.Nil(t, vm.Pending())

	vm.RequestCancel(99, "#99")
	assert.Nil(t, vm.Pending())

	vm.RequestCancel(2, "#2")
	require.NotNil(t, vm.Pending())
	assert.Equal(t, int64(2), vm.Pending().OrderID)
	assert.Equal(t, "#2", vm.Pending().DisplayNo)
}

func TestConfirmCancelMutatesOnlyTarget(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{
		{OrderID: 1, OrderStatus: "PLACED", FinalAmount: 500, Items: []models.OrderItem{{ProductID: 9, Quantity: 2}}},
		{OrderID: 2, OrderStatus: "PROCESSING", FinalAmount: 750},
	}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))
	before := vm.Orders()

	vm.RequestCancel(1, "#1")
	require.NoError(t, vm.ConfirmCancel(context.Background(), "tok", 7))

	assert.Equal(t, 1, api.cancelCalls)
	assert.Equal(t, int64(1), api.lastOrderID)
	assert.Equal(t, int64(7), api.lastUserID)

	after := vm.Orders()
	assert.Equal(t, StatusCancelled, after[0].OrderStatus)
	// Everything but the status is untouched.
	before[0].OrderStatus = StatusCancelled
	assert.Equal(t, before, after)

	assert.Nil(t, vm.Pending())
	assert.False(t, vm.CancelInFlight(1))
}

func TestConfirmCancelFailureClearsPromptAndInFlight(t *testing.T) {
	api := &fakeAPI{
		orders:    []models.Order{{OrderID: 1, OrderStatus: "PLACED"}},
		cancelErr: errors.New("order already shipped"),
	}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))

	vm.RequestCancel(1, "#1")
	assert.Error(t, vm.ConfirmCancel(context.Background(), "tok", 7))

	assert.Equal(t, "PLACED", vm.Orders()[0].OrderStatus)
	assert.Nil(t, vm.Pending())
	assert.False(t, vm.CancelInFlight(1))
}

func TestConfirmCancelWithoutPendingIsNoop(t *testing.T) {
	api := &fakeAPI{}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.ConfirmCancel(context.Background(), "tok", 7))
	assert.Zero(t, api.cancelCalls)
}

func TestDismissCancel(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{{OrderID: 1, OrderStatus: "PLACED"}}}
	vm := NewViewModel(api, "")
	require.NoError(t, vm.LoadOrders(context.Background(), "tok", 7))

	vm.RequestCancel(1, "#1")
	require.NotNil(t, vm.Pending())
	vm.DismissCancel()
	assert.Nil(t, vm.Pending())
	assert.Zero(t, api.cancelCalls)
}

func TestImageURL(t *testing.T) {
	vm := NewViewModel(&fakeAPI{}, "https://cdn.example.com/")

	assert.Equal(t, "", vm.ImageURL(""))
	assert.Equal(t, "https://elsewhere.com/a.jpg", vm.ImageURL("https://elsewhere.com/a.jpg"))
	assert.Equal(t, "http://elsewhere.com/a.jpg", vm.ImageURL("http://elsewhere.com/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/img/a.jpg", vm.ImageURL("img/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/img/a.jpg", vm.ImageURL("/img/a.jpg"))
}

func TestBrokenImageSetOnlyGrows(t *testing.T) {
	vm := NewViewModel(&fakeAPI{}, "")
	assert.False(t, vm.ImageBroken(5))
	vm.MarkImageBroken(5)
	assert.True(t, vm.ImageBroken(5))
	vm.MarkImageBroken(5)
	assert.True(t, vm.ImageBroken(5))
	assert.False(t, vm.ImageBroken(6))
}

func TestSubtotal(t *testing.T) {
	o := models.Order{Items: []models.OrderItem{
		{TotalPrice: 199.50},
		{TotalPrice: 300},
	}}
	assert.InDelta(t, 499.50, Subtotal(o), 0.001)
	assert.Zero(t, Subtotal(models.Order{}))
}

func TestStyleForUnknownStatus(t *testing.T) {
	known := StyleFor("SHIPPED")
	assert.NotEqual(t, neutralStyle, known)

	assert.Equal(t, neutralStyle, StyleFor("SOMETHING_NEW"))
	assert.Equal(t, StyleFor("placed"), StyleFor("PLACED"))
}

func TestRegistryReturnsSameViewModelPerUser(t *testing.T) {
	reg := NewRegistry(&fakeAPI{}, "")
	a := reg.For(1)
	b := reg.For(1)
	c := reg.For(2)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
