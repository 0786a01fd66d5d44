package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExtensionHooks{}
	e.OnOperationStart(ctx, "identify_package_dependencies", "left-pad")
	e.OnOperationComplete(ctx, "identify_package_dependencies", "left-pad", 3, time.Second, nil)

	p := NoopProcessHooks{}
	p.OnProcessStart(ctx, "npm", []string{"install", "left-pad", "--package-lock-only"})
	p.OnProcessComplete(ctx, "npm", nil, 0, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "registry")
	c.OnCacheMiss(ctx, "registry")
	c.OnCacheSet(ctx, "registry", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.npmjs.com", "/left-pad")
	h.OnResponse(ctx, "GET", "registry.npmjs.com", "/left-pad", 200, time.Second)
	h.OnError(ctx, "GET", "registry.npmjs.com", "/left-pad", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Extension().(NoopExtensionHooks); !ok {
		t.Error("Extension() should return NoopExtensionHooks by default")
	}
	if _, ok := Process().(NoopProcessHooks); !ok {
		t.Error("Process() should return NoopProcessHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customExtension := &testExtensionHooks{}
	SetExtensionHooks(customExtension)
	if Extension() != customExtension {
		t.Error("SetExtensionHooks should set custom hooks")
	}

	customProcess := &testProcessHooks{}
	SetProcessHooks(customProcess)
	if Process() != customProcess {
		t.Error("SetProcessHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Extension().(NoopExtensionHooks); !ok {
		t.Error("Reset() should restore NoopExtensionHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testExtensionHooks{}
	SetExtensionHooks(custom)
	SetExtensionHooks(nil)

	if Extension() != custom {
		t.Error("SetExtensionHooks(nil) should be ignored")
	}
}

type testExtensionHooks struct{ NoopExtensionHooks }
type testProcessHooks struct{ NoopProcessHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
