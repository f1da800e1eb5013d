// Package session owns the client-side durable state: the bearer token, the
// user-profile blob, flash messages, and the last-visited hint. Everything
// else in the app reads auth state through a Manager instead of poking at
// cookies directly.
package session

import (
	"encoding/gob"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

const (
	sessionName = "store-session"

	keyToken       = "auth_token"
	keyUser        = "user_record"
	keyLastVisited = "last_visited"
	keyAuthFlow    = "auth_flow"

	// AdminRole is the exact role literal that marks an administrator.
	AdminRole = "Admin"
)

// FlashMessage is a transient notification drained on the next page render.
type FlashMessage struct {
	Type    string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

type Manager struct {
	store      *sessions.CookieStore
	adminEmail string
}

func NewManager(store *sessions.CookieStore, adminEmail string) *Manager {
	return &Manager{store: store, adminEmail: adminEmail}
}

// get never fails hard: a corrupt cookie just yields a fresh session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		slog.Debug("Session decode failed, starting fresh", "error", err)
	}
	return s
}

func (m *Manager) Token(r *http.Request) string {
	token, _ := m.get(r).Values[keyToken].(string)
	return token
}

func (m *Manager) SetToken(r *http.Request, w http.ResponseWriter, token string) error {
	s := m.get(r)
	s.Values[keyToken] = token
	return s.Save(r, w)
}

// Clear removes the token and the user record in one write. Flashes and the
// last-visited hint survive a logout.
func (m *Manager) Clear(r *http.Request, w http.ResponseWriter) error {
	s := m.get(r)
	delete(s.Values, keyToken)
	delete(s.Values, keyUser)
	return s.Save(r, w)
}

// User returns the stored profile record, or nil when absent or malformed.
func (m *Manager) User(r *http.Request) *models.UserRecord {
	blob, _ := m.get(r).Values[keyUser].(string)
	return decodeUser(blob)
}

// SetUser replaces the whole stored record; partial patches are not a thing.
func (m *Manager) SetUser(r *http.Request, w http.ResponseWriter, rec *models.UserRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s := m.get(r)
	s.Values[keyUser] = string(blob)
	return s.Save(r, w)
}

func (m *Manager) UserID(r *http.Request) (int64, bool) {
	return UserIDOf(m.User(r))
}

// IsAuthenticated only checks token presence. Expiry and signature belong to
// the platform API, which rejects stale tokens on its own.
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	return m.Token(r) != ""
}

func (m *Manager) IsAdmin(r *http.Request) bool {
	return IsAdminUser(m.User(r), m.adminEmail)
}

func (m *Manager) LastVisited(r *http.Request) string {
	page, _ := m.get(r).Values[keyLastVisited].(string)
	return page
}

func (m *Manager) SetLastVisited(r *http.Request, w http.ResponseWriter, page string) error {
	s := m.get(r)
	s.Values[keyLastVisited] = page
	return s.Save(r, w)
}

// AuthFlow holds the serialized login/registration modal state between
// requests.
func (m *Manager) AuthFlow(r *http.Request) string {
	blob, _ := m.get(r).Values[keyAuthFlow].(string)
	return blob
}

func (m *Manager) SetAuthFlow(r *http.Request, w http.ResponseWriter, blob string) error {
	s := m.get(r)
	s.Values[keyAuthFlow] = blob
	return s.Save(r, w)
}

func (m *Manager) AddFlash(r *http.Request, w http.ResponseWriter, f FlashMessage) {
	s := m.get(r)
	s.AddFlash(f)
	if err := s.Save(r, w); err != nil {
		slog.Error("Failed to save session flash", "error", err)
	}
}

// Flashes drains pending flash messages and saves the session.
func (m *Manager) Flashes(r *http.Request, w http.ResponseWriter) []FlashMessage {
	s := m.get(r)
	raw := s.Flashes()
	var messages []FlashMessage
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	if len(raw) > 0 {
		if err := s.Save(r, w); err != nil {
			slog.Error("Failed to save session after draining flashes", "error", err)
		}
	}
	return messages
}

func decodeUser(blob string) *models.UserRecord {
	if blob == "" {
		return nil
	}
	var rec models.UserRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		// Fail soft: a malformed stored record reads as "no user".
		slog.Debug("Malformed user record in session", "error", err)
		return nil
	}
	return &rec
}

// UserIDOf reads the record's id, falling back to the legacy userId field.
func UserIDOf(rec *models.UserRecord) (int64, bool) {
	if rec == nil {
		return 0, false
	}
	if rec.ID != 0 {
		return rec.ID, true
	}
	if rec.UserID != 0 {
		return rec.UserID, true
	}
	return 0, false
}

// IsAdminUser is true on any of three independent paths: the exact role
// literal, the configured admin email, or an explicit isAdmin flag.
func IsAdminUser(rec *models.UserRecord, adminEmail string) bool {
	if rec == nil {
		return false
	}
	if rec.Role == AdminRole {
		return true
	}
	if adminEmail != "" && rec.Email == adminEmail {
		return true
	}
	return rec.IsAdmin
}
