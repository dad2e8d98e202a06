// Package admin implements the demo admin gate. It is a local UI switch,
// not a security mechanism: the credentials are fixed and published on
// the login view.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/storage"
)

// Demo credentials, shown to the user on the login view.
const (
	DemoUsername = "admin"
	DemoPassword = "tastydemo"

	// SessionUsername is the display name stored on successful login.
	SessionUsername = "demo-admin"
)

// CredentialsHint is the message shown after a failed login.
var CredentialsHint = fmt.Sprintf("Wrong credentials. Demo credentials: %s / %s", DemoUsername, DemoPassword)

// Gate holds the persisted admin session.
type Gate struct {
	mu      sync.RWMutex
	session domain.AdminSession
	records *storage.Records
	log     *logger.Logger
}

// NewGate creates a logged-out gate. Call Load to restore a saved session.
func NewGate(records *storage.Records, log *logger.Logger) *Gate {
	return &Gate{records: records, log: log}
}

// Load restores the saved session. Missing or unreadable records leave
// the gate logged out.
func (g *Gate) Load(ctx context.Context) {
	s, err := g.records.LoadSession(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			g.log.Warn("saved admin session unreadable: %v", err)
		}
		s = domain.LoggedOut
	}

	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
}

// Session returns the current session.
func (g *Gate) Session() domain.AdminSession {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// LoggedIn reports whether the admin view is unlocked.
func (g *Gate) LoggedIn() bool {
	return g.Session().LoggedIn
}

// Login unlocks the gate on an exact credential match. On mismatch the
// session is left untouched and the returned error's message names the
// demo credentials.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if username != DemoUsername || password != DemoPassword {
		g.log.Info("admin login rejected for %q", username)
		return &CredentialsError{}
	}
	return g.set(ctx, domain.AdminSession{LoggedIn: true, Username: SessionUsername})
}

// Logout clears the session.
func (g *Gate) Logout(ctx context.Context) error {
	return g.set(ctx, domain.LoggedOut)
}

func (g *Gate) set(ctx context.Context, s domain.AdminSession) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session = s
	if err := g.records.SaveSession(ctx, s); err != nil {
		return err
	}
	g.log.Info("admin session: loggedIn=%v user=%q", s.LoggedIn, s.Username)
	return nil
}

// CredentialsError is returned by Login on a mismatch. It matches
// domain.ErrInvalidCredentials with errors.Is.
type CredentialsError struct{}

func (e *CredentialsError) Error() string { return CredentialsHint }

// Is lets errors.Is(err, domain.ErrInvalidCredentials) succeed.
func (e *CredentialsError) Is(target error) bool {
	return target == domain.ErrInvalidCredentials
}
