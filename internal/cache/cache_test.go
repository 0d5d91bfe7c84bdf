// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetPut(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache returned a value")
	}

	c.Put("a", 42)
	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Errorf("Get(a) = %d, %v, want 42, true", got, ok)
	}
}

func TestPutReplaces(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)
	c.Put("a", 1)
	c.Put("a", 2)

	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Get(a) = %d, want replaced value 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](2, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a missing before eviction")
	}

	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want least recently used dropped")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted, want most recently used kept")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing after insert")
	}
}

func TestTTLExpiry(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, 10*time.Millisecond)
	c.Put("a", 1)

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry still served")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after lazy expiry, want 0", c.Len())
	}
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)
	c.Put("a", 1)

	if !c.Invalidate("a") {
		t.Error("Invalidate(a) = false, want true")
	}
	if c.Invalidate("a") {
		t.Error("second Invalidate(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated entry still served")
	}
}

func TestClearAndStats(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](4, time.Minute)
	c.Put("a", "x")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d, %d, %d, want 1, 1, 1", hits, misses, size)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](64, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%16)
				c.Put(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
}
