package services

import "github.com/google/uuid"

// Actor is the authenticated caller: a regular user or an administrator.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanAccess reports whether the actor may operate on a resource owned by
// ownerID. Administrators have unrestricted access; everyone else must own
// the resource. For payments and line items the owner is resolved through
// the parent booking before calling this.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin || a.UserID == ownerID
}
