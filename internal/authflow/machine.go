// Package authflow tracks the login/registration modal as an explicit state
// machine: single-step login plus a two-phase registration (details, then
// password).
package authflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

type Step string

const (
	StepLogin            Step = "login"
	StepRegisterDetails  Step = "register-details"
	StepRegisterPassword Step = "register-password"
)

// Mode selects what the modal opens as.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

var allowedTransitions = map[Step]map[Step]bool{
	StepLogin: {
		StepRegisterDetails: true,
	},
	StepRegisterDetails: {
		StepLogin:            true,
		StepRegisterPassword: true,
	},
	StepRegisterPassword: {
		StepLogin: true,
	},
}

var (
	ErrPasswordMismatch = errors.New("Passwords do not match.")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters.")
)

// API is the slice of the platform client the auth flow needs.
type API interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	RegisterStep1(ctx context.Context, name, email, mobile string) error
	RegisterStep2(ctx context.Context, email, password string) error
}

// Machine holds the modal's state. Fields are exported so callers can stash
// the machine between requests; the zero value is not usable, go through New.
type Machine struct {
	api        API
	adminEmail string

	Step   Step   `json:"step"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func New(platformAPI API, adminEmail string) *Machine {
	return &Machine{api: platformAPI, adminEmail: adminEmail, Step: StepLogin}
}

// Reset wipes every field and returns to the first step of the given mode.
// Opening the modal always resets; nothing leaks across opens.
func (m *Machine) Reset(mode Mode) {
	m.Name, m.Email, m.Mobile = "", "", ""
	if mode == ModeRegister {
		m.Step = StepRegisterDetails
	} else {
		m.Step = StepLogin
	}
}

func (m *Machine) transition(next Step) bool {
	if !allowedTransitions[m.Step][next] {
		slog.Warn("Rejected auth flow transition", "from", string(m.Step), "to", string(next))
		return false
	}
	m.Step = next
	return true
}

// SwitchToRegister moves from the login view to registration details.
func (m *Machine) SwitchToRegister() {
	m.transition(StepRegisterDetails)
}

// SubmitDetails runs the server-side pre-registration. Success advances to
// the password step with the details retained.
func (m *Machine) SubmitDetails(ctx context.Context, name, email, mobile string) error {
	if m.Step != StepRegisterDetails {
		return nil
	}
	if err := m.api.RegisterStep1(ctx, name, email, mobile); err != nil {
		return err
	}
	m.Name, m.Email, m.Mobile = name, email, mobile
	m.transition(StepRegisterPassword)
	return nil
}

// SubmitPassword finalizes registration. Both local checks run before any
// network call and each violation carries its own message.
func (m *Machine) SubmitPassword(ctx context.Context, password, confirm string) error {
	if m.Step != StepRegisterPassword {
		return nil
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if err := m.api.RegisterStep2(ctx, m.Email, password); err != nil {
		return err
	}
	m.transition(StepLogin)
	return nil
}

// LoginOutcome is what a successful login produces: the credentials to
// persist and where to navigate.
type LoginOutcome struct {
	Token       string
	User        models.UserRecord
	Destination string
}

// SubmitLogin exits the machine on success; the destination depends on the
// just-fetched admin flag, not on anything stored earlier.
func (m *Machine) SubmitLogin(ctx context.Context, email, password string) (*LoginOutcome, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	dest := "/shop"
	if session.IsAdminUser(&result.User, m.adminEmail) {
		dest = "/admin"
	}
	return &LoginOutcome{Token: result.Token, User: result.User, Destination: dest}, nil
}
