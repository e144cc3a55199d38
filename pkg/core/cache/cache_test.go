package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, cfg Config) (*Cache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	c := New[string](cfg)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestCache_GetSet(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() found a missing key")
	}

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get() = %v, %v, want 1, true", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get() found a deleted key")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses, want 1 and 2", hits, misses)
	}
	if rate < 33 || rate > 34 {
		t.Errorf("Stats() hit rate = %v, want about 33.3", rate)
	}
}

func TestCache_Expiration(t *testing.T) {
	c, clock := newTestCache(t, Config{MaxItems: 10, TTL: time.Minute})

	c.Set("a", "1")
	c.SetWithTTL("b", "2", 0)

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned an expired entry")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("Get() lost an entry without TTL")
	}

	c.Set("c", "3")
	clock.Advance(2 * time.Minute)
	c.cleanup()
	if c.Size() != 1 {
		t.Errorf("Size() = %d after cleanup, want 1", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c, clock := newTestCache(t, Config{MaxItems: 2})

	c.Set("a", "1")
	clock.Advance(time.Second)
	c.Set("b", "2")
	clock.Advance(time.Second)
	c.Set("a", "1'") // overwrite does not evict
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}

	clock.Advance(time.Second)
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Error("Expected b to be evicted as the oldest entry")
	}
	if v, _ := c.Get("a"); v != "1'" {
		t.Errorf("Get(a) = %v, want 1'", v)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", compute)
		if err != nil || v != "value" {
			t.Fatalf("GetOrSet() = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("other", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("other"); ok {
		t.Error("GetOrSet() stored a failed computation")
	}
}

func TestCache_Clear(t *testing.T) {
	c, _ := newTestCache(t, DefaultConfig())
	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", c.Size())
	}
	c.Close()
	c.Close()
}

func TestKey(t *testing.T) {
	a := Key("parse", "recover", "1 + 2")
	if a != Key("parse", "recover", "1 + 2") {
		t.Error("Key() is not deterministic")
	}
	if a == Key("parse", "fail-fast", "1 + 2") {
		t.Error("Key() ignores a part")
	}
	if a == Key("parse", "recover1", " + 2") {
		t.Error("Key() is ambiguous across part boundaries")
	}
	if len(a) != len("parse:")+32 {
		t.Errorf("Key() length = %d, want %d", len(a), len("parse:")+32)
	}
}
