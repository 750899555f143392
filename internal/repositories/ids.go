package repositories

import "github.com/google/uuid"

// validID reports whether every id is a well-formed uuid. Postgres rejects a
// malformed literal against a uuid column instead of matching no rows.
func validID(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
