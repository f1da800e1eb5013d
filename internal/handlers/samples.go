package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/samples"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

type SampleHandler struct {
	VM        *samples.ViewModel
	Sessions  *session.Manager
	Templates *TemplateCache
}

type sampleRequestView struct {
	models.SampleRequest
	Style samples.StatusStyle
}

func (h *SampleHandler) Page(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Sessions.UserID(r)
	if !ok {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Please log in again."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}
	ctx := r.Context()

	products, err := h.VM.LoadProducts(ctx)
	if err != nil {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not load products. Please try again."})
	} else if len(products) == 0 {
		// Malformed entries are dropped silently; only the aggregate empty
		// result gets a notice.
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "No products available for sample requests."})
	}

	requests, err := h.VM.LoadRequests(ctx, h.Sessions.Token(r), userID)
	if err != nil {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not load your sample requests."})
	}

	tmpl := h.Templates.Get("samples.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	views := make([]sampleRequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, sampleRequestView{SampleRequest: req, Style: samples.StyleFor(req.Status)})
	}

	data := map[string]interface{}{
		"Products":  products,
		"Requests":  views,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

func (h *SampleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/user/samples", http.StatusSeeOther)
		return
	}

	productID, _ := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	req := &models.SampleRequest{
		ProductID:   productID,
		ProductName: r.FormValue("product_name"),
		HouseNo:     r.FormValue("house_no"),
		Street:      r.FormValue("street"),
		City:        r.FormValue("city"),
		State:       r.FormValue("state"),
		Pincode:     r.FormValue("pincode"),
	}

	err := h.VM.SubmitRequest(r.Context(), h.Sessions.Token(r), req, func() {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "success", Message: "Sample request submitted!"})
	})
	if err != nil {
		var verr *samples.ValidationError
		var apiErr *api.APIError
		switch {
		case errors.As(err, &verr):
			h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: verr.Message})
		case errors.As(err, &apiErr) && apiErr.Message != "":
			h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: apiErr.Message})
		default:
			h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: "Could not submit your request. Please try again."})
		}
	}

	// The page reload below re-fetches the request list after a successful
	// creation; nothing is mutated locally.
	http.Redirect(w, r, "/user/samples", http.StatusSeeOther)
}
