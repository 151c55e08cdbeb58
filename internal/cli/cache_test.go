package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stressmap/pkg/cache"
	"github.com/matzehuels/stressmap/pkg/observability"
)

func TestCachePathCommand(t *testing.T) {
	t.Cleanup(observability.Reset)
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(xdg, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Cleanup(observability.Reset)
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	t.Setenv(redisURLEnv, "")

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestOpenCacheNoCache(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	store, keyer, err := c.openCache(context.Background(), true, "redis://localhost:6379")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.NullCache); !ok || keyer != nil {
		t.Errorf("openCache(noCache) = %T, %v", store, keyer)
	}
}
