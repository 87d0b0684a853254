package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key. Callers prefix keys by entity
// type so ids of different entities cannot collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID returns the id of the page stored under locale and slug.
func PageUUID(locale, slug string) uuid.UUID {
	return UUID("site:page:" + strings.ToLower(strings.TrimSpace(locale)) + ":" + strings.TrimSpace(slug))
}
