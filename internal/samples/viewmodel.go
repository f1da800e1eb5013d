// Package samples is the view-model behind the product-sample request page:
// catalog loading, field validation, and the user's request history.
package samples

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

// API is the slice of the platform client this view-model needs.
type API interface {
	Products(ctx context.Context) ([]models.CatalogProduct, error)
	SampleRequests(ctx context.Context, token string, userID int64) ([]models.SampleRequest, error)
	CreateSampleRequest(ctx context.Context, token string, req *models.SampleRequest) error
}

type ViewModel struct {
	api API
}

func NewViewModel(api API) *ViewModel {
	return &ViewModel{api: api}
}

// LoadProducts fetches the catalog and maps the upstream shape to the
// selection-control shape, dropping malformed entries silently. Callers show
// one aggregate "no products" notice when the filtered result is empty.
func (vm *ViewModel) LoadProducts(ctx context.Context) ([]models.Product, error) {
	upstream, err := vm.api.Products(ctx)
	if err != nil {
		slog.Error("Failed to fetch product catalog", "error", err)
		return nil, err
	}
	return MapProducts(upstream), nil
}

// MapProducts converts upstream records (id/name) into Products
// (productId/productName), keeping only entries with a positive id and a
// non-empty name.
func MapProducts(upstream []models.CatalogProduct) []models.Product {
	var products []models.Product
	for _, p := range upstream {
		if p.ID <= 0 || strings.TrimSpace(p.Name) == "" {
			continue
		}
		products = append(products, models.Product{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Price:        p.Price,
			CategoryName: p.CategoryName,
		})
	}
	return products
}

// SubmitRequest validates and submits a new sample request. Validation
// failures abort before any network call. On success onDone runs so the
// caller can re-fetch the request list; the view-model mutates nothing
// locally.
func (vm *ViewModel) SubmitRequest(ctx context.Context, token string, req *models.SampleRequest, onDone func()) error {
	if verr := Validate(req); verr != nil {
		return verr
	}
	if err := vm.api.CreateSampleRequest(ctx, token, req); err != nil {
		slog.Error("Failed to create sample request", "product_id", req.ProductID, "error", err)
		return err
	}
	slog.Info("Sample request created", "product_id", req.ProductID)
	if onDone != nil {
		onDone()
	}
	return nil
}

// LoadRequests fetches the user's sample requests, newest first.
func (vm *ViewModel) LoadRequests(ctx context.Context, token string, userID int64) ([]models.SampleRequest, error) {
	requests, err := vm.api.SampleRequests(ctx, token, userID)
	if err != nil {
		slog.Error("Failed to fetch sample requests", "user_id", userID, "error", err)
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return models.ParseWhen(requests[i].RequestedAt).After(models.ParseWhen(requests[j].RequestedAt))
	})
	return requests, nil
}
