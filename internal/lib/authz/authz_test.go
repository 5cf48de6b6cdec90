package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage("admin", "a", "b"))
	assert.True(t, CanManage("user", "a", "a"))
	assert.False(t, CanManage("user", "a", "b"))
	assert.False(t, CanManage("agent", "a", "b"))
}
