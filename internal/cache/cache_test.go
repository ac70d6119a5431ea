package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
)

func doc(name string) *casegraph.CaseDocument {
	return &casegraph.CaseDocument{CaseName: name}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := NewCache(10, time.Minute)

	if _, found := c.Get(CaseKey(1)); found {
		t.Fatal("unexpected hit on empty cache")
	}

	if err := c.Set(CaseKey(1), doc("State vs. Mehta")); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, found := c.Get(CaseKey(1))
	if !found {
		t.Fatal("expected hit after set")
	}
	if got.CaseName != "State vs. Mehta" {
		t.Errorf("wrong document: %+v", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats wrong: %+v", stats)
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(10, time.Minute)

	c.Set(CaseKey(7), doc("State vs. Rao"))
	c.Delete(CaseKey(7))

	if _, found := c.Get(CaseKey(7)); found {
		t.Error("expected miss after delete")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(10, time.Minute)

	c.Set(CaseKey(1), doc("a"))
	c.Set(CaseKey(2), doc("b"))
	c.Clear()

	if stats := c.Stats(); stats.Size != 0 {
		t.Errorf("expected empty cache, size %d", stats.Size)
	}
}

func TestCacheBoundedSize(t *testing.T) {
	c := NewCache(2, time.Minute)

	c.Set(CaseKey(1), doc("a"))
	c.Set(CaseKey(2), doc("b"))
	c.Set(CaseKey(3), doc("c"))

	if stats := c.Stats(); stats.Size > 2 {
		t.Errorf("cache grew past its bound: %d", stats.Size)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(50, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n uint) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(CaseKey(n), doc("concurrent"))
				c.Get(CaseKey(n))
				c.Stats()
			}
		}(uint(i))
	}
	wg.Wait()

	stats := c.Stats()
	if stats.Size != 8 {
		t.Errorf("expected 8 entries, got %d", stats.Size)
	}
	if stats.Hits == 0 {
		t.Error("expected recorded hits")
	}
}

func TestCaseKey(t *testing.T) {
	if CaseKey(42) != "case:42" {
		t.Errorf("unexpected key: %s", CaseKey(42))
	}
}
