package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnRunStart(ctx, "run", []string{"svg", "png"})
	r.OnFormatComplete(ctx, "run", "svg", 1024, time.Second, nil)
	r.OnPointRejected(ctx, "run", 3, 3.5, 90)
	r.OnRunComplete(ctx, "run", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "svg")
	c.OnCacheMiss(ctx, "png")
	c.OnCacheSet(ctx, "json", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)
	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&testCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "svg")
		}()
	}
	wg.Wait()
}

type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
