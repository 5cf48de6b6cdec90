package token

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tok, err := New()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, Bytes)
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		tok, err := New()
		require.NoError(t, err)
		_, dup := seen[tok]
		assert.False(t, dup, "duplicate token generated")
		seen[tok] = struct{}{}
	}
}
