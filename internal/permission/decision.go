// Package permission holds the pure authorization rules for users and
// folders. Every function maps (actor, target, facts) to a Decision
// without touching storage, so the rules are exhaustively testable and
// managers can short-circuit before performing any mutation.
package permission

import "github.com/google/uuid"

// Actor is the authenticated identity performing a request, produced
// once from verified token claims.
type Actor struct {
	ID          uuid.UUID
	Username    string
	IsSuperuser bool
}

// Decision is the outcome of a permission check: either Allow, or Deny
// with the reason to surface to the client.
type Decision struct {
	reason error
}

// Allow permits the operation.
func Allow() Decision {
	return Decision{}
}

// Deny rejects the operation with the given reason.
func Deny(reason error) Decision {
	return Decision{reason: reason}
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.reason == nil
}

// Reason returns the denial reason, or nil when allowed.
func (d Decision) Reason() error {
	return d.reason
}
