package dynamodb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPrefixes(t *testing.T) {
	assert.Equal(t, "USER#u-1", UserPK("u-1"))
	assert.Equal(t, "NOTE#n-1", NoteSK("n-1"))
	assert.Equal(t, "EMAIL#alice@example.com", EmailPK("alice@example.com"))
}

func TestKeyNamespacesDisjoint(t *testing.T) {
	// The same raw id can never collide across item kinds
	id := "abc-123"

	keys := []string{UserPK(id), NoteSK(id), EmailPK(id)}
	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestProfileSentinelOutsideNoteRange(t *testing.T) {
	// Listing notes filters on the NOTE# sort-key prefix; the profile and
	// email sentinel sort keys must never match it.
	assert.False(t, strings.HasPrefix(profileSortKey, noteKeyPrefix))
	assert.False(t, strings.HasPrefix(emailSortKey, noteKeyPrefix))
	assert.True(t, strings.HasPrefix(NoteSK("any"), noteKeyPrefix))
}
