// Package group holds the tenant boundary of the system. Every inbound
// order batch is written on behalf of exactly one group, and the group's
// shared secret is the only credential that authorizes those writes.
package group

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// Group represents a tenant. Groups are created administratively (seed
// data or operator tooling) and are read-only from the ingestion engine's
// point of view.
type Group struct {
	ID          uuid.UUID
	Name        string
	CallbackURL string
	Secret      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VerifySecret reports whether the presented secret matches the stored
// one. The comparison is constant-time so the check does not leak how
// much of the secret was correct.
func (g *Group) VerifySecret(presented string) bool {
	if presented == "" || g.Secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.Secret), []byte(presented)) == 1
}
