package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	svg := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(svg, "artifact:svg:") {
		t.Errorf("ArtifactKey unexpected: %s", svg)
	}
	if again := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}); again != svg {
		t.Errorf("ArtifactKey not deterministic: %s != %s", again, svg)
	}

	tests := []struct {
		name string
		hash string
		opts ArtifactKeyOpts
	}{
		{"format", "hash123", ArtifactKeyOpts{Format: "png"}},
		{"description", "hash456", ArtifactKeyOpts{Format: "svg"}},
		{"configs", "hash123", ArtifactKeyOpts{Format: "svg", ConfigsHash: "c1"}},
		{"response", "hash123", ArtifactKeyOpts{Format: "svg", Response: "base64"}},
		{"scale", "hash123", ArtifactKeyOpts{Format: "svg", Scale: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.ArtifactKey(tt.hash, tt.opts); got == svg {
				t.Errorf("ArtifactKey(%s) should differ from the svg key", tt.name)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1:")

	want := "v1:" + inner.ArtifactKey("h", ArtifactKeyOpts{Format: "pdf"})
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "pdf"}); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(key, "prefix:artifact:svg:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v, want miss", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get(key) = %q, %v, %v, want value, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not an entry"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "old", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "fresh", []byte("y"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("z"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(10 * time.Minute)
	n, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	for _, k := range []string{"fresh", "forever"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("Get(%s) should still hit after Prune", k)
		}
	}
}

func TestFileCacheStoresBinary(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	png := []byte{0x89, 'P', 'N', 'G', 0, 0xff}
	if err := c.Set(ctx, "img", png, 0); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(c.path("img"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(entryHeader+len(png)) {
		t.Errorf("entry size = %d, want %d", info.Size(), entryHeader+len(png))
	}
	got, _, _ := c.Get(ctx, "img")
	if string(got) != string(png) {
		t.Errorf("Get(img) = %v, want %v", got, png)
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("ARTWORK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARTWORK_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url, WithKeyPrefix("artwork-test:"))
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get(key) = %q, %v, %v, want value, true, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("Get after Delete = hit %v, err %v, want miss", hit, err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	plain := errors.New("WRONGTYPE")
	if IsRetryable(classify(plain)) {
		t.Error("non-network errors should not be retryable")
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := classify(netErr)
	if !IsRetryable(err) {
		t.Error("network errors should be retryable")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("classify() = %v, want ErrNetwork", err)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should report a wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Retryable should keep the wrapped error reachable")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should be false for a plain error")
	}
}

func TestBackoffDo(t *testing.T) {
	fast := Backoff{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"permanent error", 5, errPermanent, 1, errPermanent},
		{"recovers", 2, Retryable(ErrNetwork), 3, nil},
		{"exhausted", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Do() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffZeroAttempts(t *testing.T) {
	calls := 0
	_ = Backoff{}.Do(context.Background(), func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{Attempts: 3, Delay: time.Hour}.Do(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

func TestHashJSON(t *testing.T) {
	a, err := HashJSON(map[string]any{"r": 50, "fill": "red"})
	if err != nil {
		t.Fatalf("HashJSON error: %v", err)
	}
	b, _ := HashJSON(map[string]any{"fill": "red", "r": 50})
	if a != b {
		t.Error("HashJSON should not depend on map order")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON(func) should fail")
	}
}
