package extension

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// handlerExt is a native test extension whose OnPromptStarted behavior is
// configurable per test.
type handlerExt struct {
	patch  extsdk.Event
	err    error
	panics bool
	calls  int
}

func (h *handlerExt) OnPromptStarted(ev extsdk.Event, ec extsdk.Context) (extsdk.Event, error) {
	h.calls++
	if h.panics {
		panic("boom")
	}
	return h.patch, h.err
}

// silentExt has no handlers at all.
type silentExt struct{}

// badSignatureExt declares the right method name with the wrong shape.
type badSignatureExt struct{ calls int }

func (b *badSignatureExt) OnPromptStarted(s string) string {
	b.calls++
	return s
}

func newDispatchManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(Options{GlobalDir: t.TempDir(), Logger: zap.NewNop()})
}

func registerNative(m *Manager, name string, instance any, projectDir string) {
	m.registry.Register(instance, extsdk.Metadata{Name: name, Version: "1.0.0"}, "/"+name+".go", projectDir)
	m.registry.SetInitialized(name, true)
}

func TestDispatchNoExtensionsFastPath(t *testing.T) {
	m := newDispatchManager(t)
	in := extsdk.Event{"prompt": "hi"}

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, in, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(in, out))
	assert.False(t, out.Blocked())
}

func TestDispatchUnknownEventRejected(t *testing.T) {
	m := newDispatchManager(t)
	_, err := m.DispatchEvent("OnSomethingMadeUp", extsdk.Event{}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDispatchOriginalNeverMutated(t *testing.T) {
	m := newDispatchManager(t)
	registerNative(m, "a", &handlerExt{patch: extsdk.Event{"prompt": "patched"}}, "")

	in := extsdk.Event{"prompt": "hi", "mode": "agent"}
	out, err := m.DispatchEvent(extsdk.EventPromptStarted, in, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "hi", in["prompt"], "caller's event must keep its pre-call value")
	assert.Equal(t, "patched", out["prompt"])
	assert.Equal(t, "agent", out["mode"], "unpatched fields are preserved")
}

func TestDispatchPatchAccumulation(t *testing.T) {
	m := newDispatchManager(t)
	registerNative(m, "a", &handlerExt{patch: extsdk.Event{"prompt": "first", "tag": "a"}}, "")
	registerNative(m, "b", &handlerExt{patch: extsdk.Event{"prompt": "second"}}, "")

	out, err := m.DispatchEvent(extsdk.EventPromptStarted,
		extsdk.Event{"prompt": "hi", "mode": "agent"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "second", out["prompt"], "later extension wins on conflicting patches")
	assert.Equal(t, "a", out["tag"], "earlier non-conflicting patches survive")
	assert.Equal(t, "agent", out["mode"])
}

func TestDispatchBlockingShortCircuits(t *testing.T) {
	m := newDispatchManager(t)
	blocker := &handlerExt{patch: extsdk.Event{"blocked": true}}
	after := &handlerExt{patch: extsdk.Event{"prompt": "never"}}
	registerNative(m, "blocker", blocker, "")
	registerNative(m, "after", after, "")

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{"prompt": "hi"}, nil, nil)
	require.NoError(t, err)

	assert.True(t, out.Blocked())
	assert.Equal(t, 1, blocker.calls)
	assert.Zero(t, after.calls, "extensions after the blocker must not run")
	assert.Equal(t, "hi", out["prompt"], "patches applied before the block remain")
}

func TestDispatchHandlerErrorIsolated(t *testing.T) {
	m := newDispatchManager(t)
	failing := &handlerExt{err: errors.New("bad handler")}
	healthy := &handlerExt{patch: extsdk.Event{"prompt": "ok"}}
	registerNative(m, "failing", failing, "")
	registerNative(m, "healthy", healthy, "")

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{"prompt": "hi"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls, "a failing handler must not stop the chain")
	assert.Equal(t, "ok", out["prompt"])
}

func TestDispatchHandlerPanicIsolated(t *testing.T) {
	m := newDispatchManager(t)
	registerNative(m, "panicky", &handlerExt{panics: true}, "")
	healthy := &handlerExt{patch: extsdk.Event{"prompt": "ok"}}
	registerNative(m, "healthy", healthy, "")

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{"prompt": "hi"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out["prompt"])
}

func TestDispatchSkipsUninitialized(t *testing.T) {
	m := newDispatchManager(t)
	ext := &handlerExt{patch: extsdk.Event{"prompt": "no"}}
	m.registry.Register(ext, extsdk.Metadata{Name: "cold"}, "/cold.go", "")
	// never SetInitialized

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{"prompt": "hi"}, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, ext.calls)
	assert.Equal(t, "hi", out["prompt"])
}

func TestDispatchSkipsMissingAndMistypedHandlers(t *testing.T) {
	m := newDispatchManager(t)
	bad := &badSignatureExt{}
	registerNative(m, "silent", &silentExt{}, "")
	registerNative(m, "badsig", bad, "")
	healthy := &handlerExt{patch: extsdk.Event{"prompt": "ok"}}
	registerNative(m, "healthy", healthy, "")

	out, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{"prompt": "hi"}, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, bad.calls, "wrong-signature method must not be invoked")
	assert.Equal(t, "ok", out["prompt"])
}

func TestDispatchOrderingGlobalBeforeProject(t *testing.T) {
	m := newDispatchManager(t)
	project := newFakeProject("/proj/a")

	var order []string
	mk := func(name string) *orderExt { return &orderExt{name: name, order: &order} }

	// Registered interleaved; globals must still run first.
	registerNative(m, "proj1", mk("proj1"), "/proj/a")
	registerNative(m, "glob1", mk("glob1"), "")
	registerNative(m, "proj2", mk("proj2"), "/proj/a")
	registerNative(m, "glob2", mk("glob2"), "")
	registerNative(m, "other", mk("other"), "/proj/b")

	_, err := m.DispatchEvent(extsdk.EventPromptStarted, extsdk.Event{}, project, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"glob1", "glob2", "proj1", "proj2"}, order,
		"global-before-project, insertion order within each group, other projects excluded")
}

// orderExt records the order in which extensions were invoked.
type orderExt struct {
	name  string
	order *[]string
}

func (o *orderExt) OnPromptStarted(ev extsdk.Event, ec extsdk.Context) (extsdk.Event, error) {
	*o.order = append(*o.order, o.name)
	return nil, nil
}

func TestDispatchPromptStartedScenario(t *testing.T) {
	m := newDispatchManager(t)
	registerNative(m, "first", &handlerExt{patch: extsdk.Event{"prompt": "hi!"}}, "")
	registerNative(m, "second", &handlerExt{}, "")

	in := extsdk.Event{"prompt": "hi", "mode": "agent", "promptContext": map[string]any{"id": "1"}}
	out, err := m.DispatchEvent(extsdk.EventPromptStarted, in, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "hi!", out["prompt"])
	_, hasBlocked := out["blocked"]
	assert.False(t, hasBlocked, "blocked stays unset when nobody blocks")
}
