package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresence_Transitions(t *testing.T) {
	presence := NewPresence()

	// Given: a user that was never seen
	assert.False(t, presence.IsOnline("alice"))

	// When: the user goes online
	presence.MarkOnline("alice")

	// Then: the set reflects the last transition
	assert.True(t, presence.IsOnline("alice"))

	// When: the user goes offline again
	presence.MarkOffline("alice")

	// Then: membership is gone
	assert.False(t, presence.IsOnline("alice"))
}

func TestPresence_MarkOnlineIsIdempotent(t *testing.T) {
	presence := NewPresence()

	// When: marking a user online repeatedly
	presence.MarkOnline("alice")
	presence.MarkOnline("alice")

	// Then: a single offline transition clears it
	presence.MarkOffline("alice")
	assert.False(t, presence.IsOnline("alice"))
}

func TestPresence_MarkOfflineIsIdempotent(t *testing.T) {
	presence := NewPresence()

	// Given: an online user
	presence.MarkOnline("alice")

	// When: marking them offline twice in a row
	presence.MarkOffline("alice")
	presence.MarkOffline("alice")

	// Then: the state equals a single call
	assert.False(t, presence.IsOnline("alice"))
}
