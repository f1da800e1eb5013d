package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

type HomeHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
	AssetBase string
}

// Landing applies the last-visited hint; admins never reach here (the route
// guard redirects them first).
func (h *HomeHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	dest := h.Sessions.LastVisited(r)
	if dest == "" || !strings.HasPrefix(dest, "/") {
		dest = "/shop"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

type productView struct {
	models.CatalogProduct
	ImageURL string
}

// Shop renders the storefront: catalog, new arrivals, and the banner
// slideshow. Every fetch fails soft to an empty section plus one flash.
func (h *HomeHandler) Shop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.API.Products(ctx)
	if err != nil {
		slog.Error("Failed to fetch catalog", "error", err)
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not load products. Please try again."})
	}

	arrivals, err := h.API.NewArrivals(ctx)
	if err != nil {
		slog.Error("Failed to fetch new arrivals", "error", err)
	}

	banners, err := h.API.Banners(ctx)
	if err != nil {
		slog.Error("Failed to fetch banners", "error", err)
	}

	tmpl := h.Templates.Get("shop.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if err := h.Sessions.SetLastVisited(r, w, "/shop"); err != nil {
		slog.Error("Failed to record last visited page", "error", err)
	}

	data := map[string]interface{}{
		"Products":        h.productViews(products),
		"NewArrivals":     h.productViews(arrivals),
		"Banners":         banners,
		"Flashes":         h.Sessions.Flashes(r, w),
		"IsAuthenticated": h.Sessions.IsAuthenticated(r),
	}
	tmpl.Execute(w, data)
}

// Checkout is a user-only surface; the route guard keeps everyone else out.
func (h *HomeHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"User":    h.Sessions.User(r),
		"Flashes": h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

func (h *HomeHandler) productViews(products []models.CatalogProduct) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			CatalogProduct: p,
			ImageURL:       resolveAsset(h.AssetBase, p.ImageURL),
		})
	}
	return views
}

// resolveAsset prefixes relative image paths with the configured asset
// origin; absolute URLs and empty paths pass through.
func resolveAsset(base, rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
