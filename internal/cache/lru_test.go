package cache

import "testing"

func TestLRU_PutGet(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected (1, true), got (%d, %v)", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("expected (2, true), got (%d, %v)", v, ok)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts "a"

	if _, ok := c.Get("a"); ok {
		t.Error("expected 'a' to be evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("expected (3, true), got (%d, %v)", v, ok)
	}
}

func TestLRU_RecentUseProtectsFromEviction(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")    // "a" is now most recent
	c.Put("c", 3) // should evict "b"

	if _, ok := c.Get("a"); !ok {
		t.Error("expected 'a' to survive eviction")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[string, int](2)

	c.Put("a", 1)
	c.Put("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("expected updated value 10, got %d", v)
	}
	if c.Len() != 1 {
		t.Errorf("expected length 1, got %d", c.Len())
	}
}

func TestLRU_Clear(t *testing.T) {
	c := NewLRU[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d items", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss after clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)

	c.Get("a") // hit
	c.Get("x") // miss
	c.Get("a") // hit

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("expected 2 hits and 1 miss, got %d and %d", hits, misses)
	}
	if rate := c.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("expected hit rate ~66.7, got %f", rate)
	}
}

func TestEmbeddingCache_ImageContextSeparatesKeys(t *testing.T) {
	c := NewEmbeddingCache(10)

	withImage := []float32{1, 2, 3}
	textOnly := []float32{4, 5, 6}

	c.Put("clip", "a green dog", "data:image/png;base64,AAAA", withImage)
	c.Put("clip", "a green dog", "", textOnly)

	got, ok := c.Get("clip", "a green dog", "")
	if !ok || got[0] != 4 {
		t.Error("text-only entry should not collide with image entry")
	}
	got, ok = c.Get("clip", "a green dog", "data:image/png;base64,AAAA")
	if !ok || got[0] != 1 {
		t.Error("image entry should be retrievable")
	}
}

func TestEmbeddingCache_ModelSeparatesKeys(t *testing.T) {
	c := NewEmbeddingCache(10)

	c.Put("model-a", "hello", "", []float32{1})
	if _, ok := c.Get("model-b", "hello", ""); ok {
		t.Error("different models must not share cache entries")
	}
}

func TestEmbeddingCache_CopiesOnPut(t *testing.T) {
	c := NewEmbeddingCache(10)

	vec := []float32{1, 2, 3}
	c.Put("m", "text", "", vec)
	vec[0] = 99

	got, _ := c.Get("m", "text", "")
	if got[0] != 1 {
		t.Error("cached embedding should be isolated from caller mutation")
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("m", "text", "img")
	b := Key("m", "text", "img")
	if a != b {
		t.Errorf("expected stable key, got %q and %q", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 128-bit hex key, got length %d", len(a))
	}
}
