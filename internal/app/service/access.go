package service

import (
	"strings"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
)

// normalizeID canonicalizes identifiers before comparison. Identifiers can
// arrive from different storage layers with incidental whitespace; equality
// must be value equality on the normalized form.
func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// requireOwner authorizes a mutating operation against a resource's owner.
// Authorization failures surface as 401, not 403.
func requireOwner(ownerID, callerID string) error {
	owner := normalizeID(ownerID)
	if owner == "" || owner != normalizeID(callerID) {
		return common.ErrUnauthorized
	}
	return nil
}
