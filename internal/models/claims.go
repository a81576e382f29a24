package models

import "github.com/golang-jwt/jwt/v5"

// Dashboard session scopes
const (
	ScopeTransactionWrite = "transaction:write"
	ScopeTransactionRead  = "transaction:read"
	ScopeMonitoringRead   = "monitoring:read"
)

// SessionClaims identify one dashboard session. The session id keys the
// OTP slots and the ledger, so concurrent operators never share state.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string   `json:"sid"`
	Scopes    []string `json:"scopes"`
}

// HasScope checks if the claims include a specific scope
func (c *SessionClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// DefaultScopes are granted to every new dashboard session.
func DefaultScopes() []string {
	return []string{
		ScopeTransactionWrite,
		ScopeTransactionRead,
		ScopeMonitoringRead,
	}
}
