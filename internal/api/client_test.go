package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestUserOrdersEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/user/42", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success": true, "data": [{"orderId": 9, "orderStatus": "PLACED"}]}`))
	})

	orders, err := client.UserOrders(context.Background(), "tok", 42)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(9), orders[0].OrderID)
	assert.Equal(t, "PLACED", orders[0].OrderStatus)
}

func TestUserOrdersBareArray(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"orderId": 1}, {"orderId": 2}]`))
	})

	orders, err := client.UserOrders(context.Background(), "tok", 1)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestUserOrdersMalformedBodyIsEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	})

	orders, err := client.UserOrders(context.Background(), "tok", 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCancelOrderSuccessFalse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/7/cancel", r.URL.Path)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(3), body["userId"])
		w.Write([]byte(`{"success": false, "message": "order already shipped"}`))
	})

	err := client.CancelOrder(context.Background(), "tok", 7, 3)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "order already shipped", apiErr.Message)
}

func TestCancelOrderHTTPErrorCarriesMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success": false, "message": "cannot cancel"}`))
	})

	err := client.CancelOrder(context.Background(), "tok", 7, 3)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "cannot cancel", apiErr.Message)
}

func TestLogin(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success": true, "data": {"token": "abc", "user": {"id": 5, "role": "Customer", "email": "u@example.com"}}}`))
	})

	result, err := client.Login(context.Background(), "u@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", result.Token)
	assert.Equal(t, int64(5), result.User.ID)
	assert.Equal(t, "Customer", result.User.Role)
}

func TestRequestIDForwarded(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get("X-Request-Id"))
		w.Write([]byte(`{"success": true}`))
	})

	ctx := WithRequestID(context.Background(), "req-123")
	require.NoError(t, client.Ping(ctx))
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 20*time.Millisecond)
	err := client.Ping(context.Background())
	require.Error(t, err)
}
