package auth

import "github.com/helpdesk-io/helpdesk-api/internal/domain"

// CanAccess reports whether the requester may read or mutate a resource owned
// by ownerID: admins always, everyone else only their own resources.
func CanAccess(requester *domain.Account, ownerID string) bool {
	if requester == nil {
		return false
	}
	if requester.IsAdmin() {
		return true
	}
	return requester.ID == ownerID
}
