package samples

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

type fakeAPI struct {
	products    []models.CatalogProduct
	productsErr error
	requests    []models.SampleRequest
	requestsErr error
	createErr   error

	createCalls int
	lastCreated *models.SampleRequest
}

func (f *fakeAPI) Products(ctx context.Context) ([]models.CatalogProduct, error) {
	return f.products, f.productsErr
}

func (f *fakeAPI) SampleRequests(ctx context.Context, token string, userID int64) ([]models.SampleRequest, error) {
	return f.requests, f.requestsErr
}

func (f *fakeAPI) CreateSampleRequest(ctx context.Context, token string, req *models.SampleRequest) error {
	f.createCalls++
	f.lastCreated = req
	return f.createErr
}

func TestMapProductsFiltersMalformed(t *testing.T) {
	upstream := []models.CatalogProduct{
		{ID: 1, Name: "A2 Milk 1L", Price: 90},
		{ID: 0, Name: "No id"},
		{ID: -3, Name: "Negative id"},
		{ID: 2, Name: "   "},
		{ID: 3, Name: "Paneer 200g", CategoryName: "Dairy"},
	}
	got := MapProducts(upstream)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ProductID)
	assert.Equal(t, "A2 Milk 1L", got[0].ProductName)
	assert.Equal(t, int64(3), got[1].ProductID)
	assert.Equal(t, "Dairy", got[1].CategoryName)
}

func TestLoadProductsPropagatesError(t *testing.T) {
	api := &fakeAPI{productsErr: errors.New("catalog down")}
	vm := NewViewModel(api)
	got, err := vm.LoadProducts(context.Background())
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestSubmitRequestValidationSkipsNetwork(t *testing.T) {
	api := &fakeAPI{}
	vm := NewViewModel(api)

	ran := false
	err := vm.SubmitRequest(context.Background(), "tok", &models.SampleRequest{}, func() { ran = true })

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, api.createCalls)
	assert.False(t, ran)
}

func TestSubmitRequestSuccessRunsOnDone(t *testing.T) {
	api := &fakeAPI{}
	vm := NewViewModel(api)
	req := validRequest()

	ran := false
	require.NoError(t, vm.SubmitRequest(context.Background(), "tok", req, func() { ran = true }))
	assert.Equal(t, 1, api.createCalls)
	assert.Same(t, req, api.lastCreated)
	assert.True(t, ran)
}

func TestSubmitRequestAPIFailureSkipsOnDone(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("duplicate request")}
	vm := NewViewModel(api)

	ran := false
	err := vm.SubmitRequest(context.Background(), "tok", validRequest(), func() { ran = true })
	assert.Error(t, err)
	assert.Equal(t, 1, api.createCalls)
	assert.False(t, ran)
}

func TestSubmitRequestNilOnDone(t *testing.T) {
	vm := NewViewModel(&fakeAPI{})
	assert.NoError(t, vm.SubmitRequest(context.Background(), "tok", validRequest(), nil))
}

func TestLoadRequestsSortsNewestFirst(t *testing.T) {
	api := &fakeAPI{requests: []models.SampleRequest{
		{SampleRequestID: 1, RequestedAt: "2025-04-01T08:00:00Z"},
		{SampleRequestID: 2, RequestedAt: "2025-06-15T08:00:00Z"},
		{SampleRequestID: 3, RequestedAt: "2025-05-20"},
	}}
	vm := NewViewModel(api)
	got, err := vm.LoadRequests(context.Background(), "tok", 7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].SampleRequestID)
	assert.Equal(t, int64(3), got[1].SampleRequestID)
	assert.Equal(t, int64(1), got[2].SampleRequestID)
}

func TestStyleForSampleStatuses(t *testing.T) {
	assert.NotEqual(t, StyleFor("PENDING"), StyleFor("whatever"))
	assert.Equal(t, StyleFor("pending"), StyleFor("PENDING"))
}
