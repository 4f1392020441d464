package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUnderLimit(t *testing.T) {
	l := New(3, time.Minute)

	assert.True(t, l.Allow("api"))
	assert.True(t, l.Allow("api"))
	assert.True(t, l.Allow("api"))
	assert.False(t, l.Allow("api"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestWindowSlides(t *testing.T) {
	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	l := New(2, time.Minute)
	l.now = func() time.Time { return base }

	assert.True(t, l.Allow("api"))
	assert.True(t, l.Allow("api"))
	assert.False(t, l.Allow("api"))

	// Past the window the old hits fall off.
	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.True(t, l.Allow("api"))
}

func TestRemaining(t *testing.T) {
	l := New(3, time.Minute)

	assert.Equal(t, 3, l.Remaining("api"))
	l.Allow("api")
	assert.Equal(t, 2, l.Remaining("api"))
	l.Allow("api")
	l.Allow("api")
	l.Allow("api")
	assert.Equal(t, 0, l.Remaining("api"))
}

func TestConcurrentAllow(t *testing.T) {
	l := New(100, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("api")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 100, count)
}
