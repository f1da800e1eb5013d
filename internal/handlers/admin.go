package handlers

import (
	"net/http"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

// AdminHandler renders the admin landing page. Management itself happens in
// the separate admin console; this client only needs somewhere for the route
// guard to send administrators.
type AdminHandler struct {
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin.html")
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
