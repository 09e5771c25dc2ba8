package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	l.get("10.0.0.1")
	l.get("10.0.0.2")
	l.visitors["10.0.0.1"].lastSeen = time.Now().Add(-10 * time.Minute)

	l.evictIdle(time.Now())

	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")
}

func TestIPRateLimiter_BucketPorIP(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	assert.True(t, l.get("a").Allow())
	assert.False(t, l.get("a").Allow())
	assert.True(t, l.get("b").Allow(), "cada IP tiene su propio bucket")
}
