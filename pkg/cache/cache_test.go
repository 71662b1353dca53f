package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/panelstitch/panelstitch/pkg/compose/feature"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = (found=%v, err=%v), want miss", found, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "key")
	if err != nil || !found {
		t.Fatalf("Get after Set = (found=%v, err=%v)", found, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q, want payload", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, found, _ := c.Get(ctx, "short"); found {
		t.Error("expired entry still served")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("null cache stored a value")
	}
}

func TestAnalysisKey(t *testing.T) {
	a := AnalysisKey("hash1", "cat1")
	b := AnalysisKey("hash2", "cat1")
	c := AnalysisKey("hash1", "cat2")

	if !strings.HasPrefix(a, "analysis:") {
		t.Errorf("key %q missing prefix", a)
	}
	if a == b || a == c {
		t.Error("keys collide across different content or catalogs")
	}
	if a != AnalysisKey("hash1", "cat1") {
		t.Error("key is not deterministic")
	}
}

func TestFileCacheStaleSchemaVersion(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)
	ctx := context.Background()

	// An entry written under an older schema must read as a miss and be
	// cleaned up, not decode into a half-filled struct.
	data, err := json.Marshal(cacheEntry{Version: entryVersion - 1, Data: []byte("old")})
	if err != nil {
		t.Fatal(err)
	}
	path := fc.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, found, err := fc.Get(ctx, "key"); err != nil || found {
		t.Errorf("Get = (found=%v, err=%v), want schema mismatch miss", found, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("stale entry not removed")
	}
}

func TestFileCacheSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(context.Background(), "key", []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && !strings.HasSuffix(path, ".json") {
			t.Errorf("unexpected file left behind: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCatalogHash(t *testing.T) {
	def := feature.DefaultCatalog()

	if CatalogHash(def) != CatalogHash(feature.DefaultCatalog()) {
		t.Error("hash is not deterministic")
	}

	custom := def
	custom.Tick = []string{"mytick"}
	if CatalogHash(def) == CatalogHash(custom) {
		t.Error("distinct catalogs share a hash")
	}
}
