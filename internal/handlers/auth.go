package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/authflow"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

type AuthHandler struct {
	API        *api.Client
	Sessions   *session.Manager
	Templates  *TemplateCache
	AdminEmail string
}

// machine restores the auth flow state stashed in the session, or starts a
// fresh one.
func (h *AuthHandler) machine(r *http.Request) *authflow.Machine {
	m := authflow.New(h.API, h.AdminEmail)
	if blob := h.Sessions.AuthFlow(r); blob != "" {
		if err := json.Unmarshal([]byte(blob), m); err != nil {
			slog.Debug("Discarding malformed auth flow state", "error", err)
		}
	}
	if m.Step == "" {
		m.Step = authflow.StepLogin
	}
	return m
}

func (h *AuthHandler) saveMachine(r *http.Request, w http.ResponseWriter, m *authflow.Machine) {
	blob, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to encode auth flow state", "error", err)
		return
	}
	if err := h.Sessions.SetAuthFlow(r, w, string(blob)); err != nil {
		slog.Error("Failed to save auth flow state", "error", err)
	}
}

func (h *AuthHandler) flashAPIError(r *http.Request, w http.ResponseWriter, err error, fallback string) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: apiErr.Message})
		return
	}
	h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: fallback})
}

// LoginGet opens the modal in login mode; opening always resets the flow.
func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)
	m.Reset(authflow.ModeLogin)
	h.saveMachine(r, w, m)

	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)
	outcome, err := m.SubmitLogin(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		h.flashAPIError(r, w, err, "Invalid email or password.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Persist token and the whole profile record, then leave the machine.
	if err := h.Sessions.SetToken(r, w, outcome.Token); err != nil {
		slog.Error("Failed to save auth token", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	if err := h.Sessions.SetUser(r, w, &outcome.User); err != nil {
		slog.Error("Failed to save user record", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	m.Reset(authflow.ModeLogin)
	h.saveMachine(r, w, m)

	slog.Info("Login successful", "user_id", outcome.User.ID, "destination", outcome.Destination)
	h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "success", Message: "Welcome back!"})
	http.Redirect(w, r, outcome.Destination, http.StatusSeeOther)
}

// RegisterGet opens the modal in register mode. A plain open resets the flow;
// ?keep=1 (used after a failed phase-1 submit) preserves it.
func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)
	if r.URL.Query().Get("keep") == "" {
		m.Reset(authflow.ModeRegister)
		h.saveMachine(r, w, m)
	}

	tmpl := h.Templates.Get("register_details.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Name":      m.Name,
		"Email":     m.Email,
		"Mobile":    m.Mobile,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

// RegisterDetailsPost runs phase 1 (server-side pre-registration).
func (h *AuthHandler) RegisterDetailsPost(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)
	if m.Step != authflow.StepRegisterDetails {
		m.Reset(authflow.ModeRegister)
	}

	err := m.SubmitDetails(r.Context(), r.FormValue("name"), r.FormValue("email"), r.FormValue("mobile"))
	if err != nil {
		h.flashAPIError(r, w, err, "Registration failed. Please try again.")
		h.saveMachine(r, w, m)
		http.Redirect(w, r, "/register?keep=1", http.StatusSeeOther)
		return
	}

	h.saveMachine(r, w, m)
	http.Redirect(w, r, "/register/password", http.StatusSeeOther)
}

// RegisterPasswordGet shows phase 2; reaching it without completing phase 1
// restarts the flow.
func (h *AuthHandler) RegisterPasswordGet(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)
	if m.Step != authflow.StepRegisterPassword {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("register_password.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Email":     m.Email,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(r, w),
	}
	tmpl.Execute(w, data)
}

// RegisterPasswordPost runs phase 2. Local checks (match, length) abort
// before any network call, each with its own message.
func (h *AuthHandler) RegisterPasswordPost(w http.ResponseWriter, r *http.Request) {
	m := h.machine(r)

	err := m.SubmitPassword(r.Context(), r.FormValue("password"), r.FormValue("confirm_password"))
	switch {
	case errors.Is(err, authflow.ErrPasswordMismatch), errors.Is(err, authflow.ErrPasswordTooShort):
		h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/register/password", http.StatusSeeOther)
		return
	case err != nil:
		h.flashAPIError(r, w, err, "Registration failed. Please try again.")
		http.Redirect(w, r, "/register/password", http.StatusSeeOther)
		return
	}

	h.saveMachine(r, w, m)
	h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "success", Message: "Registration complete! Please log in."})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the token and user record in one write.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(r, w); err != nil {
		slog.Error("Failed to clear session", "error", err)
	}
	h.Sessions.AddFlash(r, w, session.FlashMessage{Type: "success", Message: "Logged out successfully!"})
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}
