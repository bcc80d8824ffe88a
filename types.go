package chalito

import (
	"time"

	"github.com/elchalito/chalito-go/credstore"
)

// Profile is the cached user record stored alongside the tokens.
type Profile = credstore.Profile

// Role identifies an employee role as reported by the backend.
type Role string

const (
	// RoleAdmin has full access to every module.
	RoleAdmin Role = "ADMIN"
	// RoleGerente manages articles, orders, and sales.
	RoleGerente Role = "GERENTE"
	// RoleCajero operates order entry and the register.
	RoleCajero Role = "CAJERO"
	// RoleCocina sees the kitchen order queue only. It sits outside the
	// Admin > Gerente > Cajero ordering and never satisfies a minimum-role
	// check other than an exact match.
	RoleCocina Role = "COCINA"
)

// roleRank is the total ordering used by HasMinimumRole. Cocina is
// deliberately absent.
var roleRank = map[Role]int{
	RoleAdmin:   3,
	RoleGerente: 2,
	RoleCajero:  1,
}

// AuthState is the coordinator's current authentication state. Exactly one
// state is active at a time.
type AuthState int

const (
	// StateUnauthenticated means no usable session exists.
	StateUnauthenticated AuthState = iota
	// StateVerifying means a stored token is being checked against the server.
	StateVerifying
	// StateAuthenticated means a verified session is active.
	StateAuthenticated
	// StateLoginInProgress means a login call is in flight.
	StateLoginInProgress
)

// String returns the state name for logs and test failures.
func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateLoginInProgress:
		return "loginInProgress"
	default:
		return "unknown"
	}
}

// LoginRequest carries the login form fields. Remember asks the backend for a
// refresh token alongside the access token.
type LoginRequest struct {
	Username string
	Password string
	Remember bool
}

// LoginResult is returned by a successful [Client.Login].
type LoginResult struct {
	User      Profile
	ExpiresIn int
}

// SessionEventReason classifies why a session ended without an explicit logout.
type SessionEventReason string

const (
	// SessionExpired means the refresh path failed and credentials were cleared.
	SessionExpired SessionEventReason = "expired"
)

// SessionEvent is emitted on [Client.SessionEvents] when the gateway
// terminates the session. Navigation back to the login entry point is the
// hosting application's responsibility; NoticeDelay is how long the host
// should leave the expiry notification visible before doing so.
type SessionEvent struct {
	Reason      SessionEventReason
	NoticeDelay time.Duration
}
