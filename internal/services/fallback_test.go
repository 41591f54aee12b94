package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackPoolIsDistinct(t *testing.T) {
	replies := NewFallbackResponder().replies
	assert.GreaterOrEqual(t, len(replies), 5)

	seen := map[string]bool{}
	for _, r := range replies {
		assert.NotEmpty(t, r)
		assert.False(t, seen[r], "duplicate fallback %q", r)
		seen[r] = true
	}
}

func TestFallbackPickUsesSelector(t *testing.T) {
	f := NewFallbackResponder()
	f.intn = func(n int) int { return n - 1 }
	assert.Equal(t, fallbackReplies[len(fallbackReplies)-1], f.Pick())

	f.intn = func(int) int { return 0 }
	assert.Equal(t, fallbackReplies[0], f.Pick())
}

func TestFallbackPickStaysInPool(t *testing.T) {
	f := NewFallbackResponder()
	for i := 0; i < 200; i++ {
		assert.Contains(t, fallbackReplies, f.Pick())
	}
}
