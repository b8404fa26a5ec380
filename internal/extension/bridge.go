package extension

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/traefik/yaegi/interp"

	"codeforge/pkg/extsdk"
)

// interpExtension is the native face of an interpreted extension instance.
//
// yaegi materializes interpreted values as plain structs with an empty
// method set, so capability lookups on the raw instance, whether through
// type assertions or reflection, always come up empty on the host side.
// The loader therefore resolves each capability inside the interpreter,
// where the methods are visible, and binds the harvested functions here.
// Absent capabilities stay nil and the corresponding methods are no-ops,
// which matches how an instance without the method behaves.
type interpExtension struct {
	onLoad   func(extsdk.Context) error
	onUnload func(extsdk.Context) error

	tools    func(extsdk.Context) ([]extsdk.Tool, error)
	commands func(extsdk.Context) ([]extsdk.Command, error)
	agents   func(extsdk.Context) ([]extsdk.Agent, error)
	modes    func(extsdk.Context) ([]extsdk.Mode, error)

	profileUpdated func(extsdk.AgentProfile, extsdk.Context) error

	handlers map[string]extsdk.HandlerFunc
}

var (
	_ extsdk.Initializer     = (*interpExtension)(nil)
	_ extsdk.Disposer        = (*interpExtension)(nil)
	_ extsdk.ToolProvider    = (*interpExtension)(nil)
	_ extsdk.CommandProvider = (*interpExtension)(nil)
	_ extsdk.AgentProvider   = (*interpExtension)(nil)
	_ extsdk.ModeProvider    = (*interpExtension)(nil)
	_ extsdk.ProfileObserver = (*interpExtension)(nil)
)

func (x *interpExtension) OnLoad(ec extsdk.Context) error {
	if x.onLoad == nil {
		return nil
	}
	return x.onLoad(ec)
}

func (x *interpExtension) OnUnload(ec extsdk.Context) error {
	if x.onUnload == nil {
		return nil
	}
	return x.onUnload(ec)
}

func (x *interpExtension) GetTools(ec extsdk.Context) ([]extsdk.Tool, error) {
	if x.tools == nil {
		return nil, nil
	}
	return x.tools(ec)
}

func (x *interpExtension) GetCommands(ec extsdk.Context) ([]extsdk.Command, error) {
	if x.commands == nil {
		return nil, nil
	}
	return x.commands(ec)
}

func (x *interpExtension) GetAgents(ec extsdk.Context) ([]extsdk.Agent, error) {
	if x.agents == nil {
		return nil, nil
	}
	return x.agents(ec)
}

func (x *interpExtension) GetModes(ec extsdk.Context) ([]extsdk.Mode, error) {
	if x.modes == nil {
		return nil, nil
	}
	return x.modes(ec)
}

func (x *interpExtension) OnAgentProfileUpdated(profile extsdk.AgentProfile, ec extsdk.Context) error {
	if x.profileUpdated == nil {
		return nil
	}
	return x.profileUpdated(profile, ec)
}

// handler returns the bound event handler for the named event, or nil when
// the extension does not declare it.
func (x *interpExtension) handler(eventName string) extsdk.HandlerFunc {
	return x.handlers[eventName]
}

// Capabilities lists the methods the underlying extension actually
// declares, event handlers in stable order last.
func (x *interpExtension) Capabilities() []string {
	var caps []string
	if x.onLoad != nil {
		caps = append(caps, "OnLoad")
	}
	if x.onUnload != nil {
		caps = append(caps, "OnUnload")
	}
	if x.tools != nil {
		caps = append(caps, "GetTools")
	}
	if x.commands != nil {
		caps = append(caps, "GetCommands")
	}
	if x.agents != nil {
		caps = append(caps, "GetAgents")
	}
	if x.modes != nil {
		caps = append(caps, "GetModes")
	}
	if x.profileUpdated != nil {
		caps = append(caps, "OnAgentProfileUpdated")
	}
	events := make([]string, 0, len(x.handlers))
	for name := range x.handlers {
		events = append(events, name)
	}
	sort.Strings(events)
	return append(caps, events...)
}

// instanceVar is the interpreter-scope variable holding the extension
// instance every capability check asserts against.
const instanceVar = "forgeHostInstance"

// sdkAlias is the import alias the capability checks use for the extension
// SDK, chosen to avoid clashing with identifiers in extension source.
const sdkAlias = "forgesdk"

// bindCapabilities resolves the optional extension surface from inside the
// interpreter. instanceVar must already be bound. Capability signatures use
// unnamed func types so the harvested values assert cleanly on the host
// side.
func bindCapabilities(i *interp.Interpreter) *interpExtension {
	x := &interpExtension{handlers: make(map[string]extsdk.HandlerFunc)}

	x.onLoad, _ = harvest[func(extsdk.Context) error](i, "OnLoad", lifecycleSig)
	x.onUnload, _ = harvest[func(extsdk.Context) error](i, "OnUnload", lifecycleSig)
	x.tools, _ = harvest[func(extsdk.Context) ([]extsdk.Tool, error)](i, "GetTools", providerSig("Tool"))
	x.commands, _ = harvest[func(extsdk.Context) ([]extsdk.Command, error)](i, "GetCommands", providerSig("Command"))
	x.agents, _ = harvest[func(extsdk.Context) ([]extsdk.Agent, error)](i, "GetAgents", providerSig("Agent"))
	x.modes, _ = harvest[func(extsdk.Context) ([]extsdk.Mode, error)](i, "GetModes", providerSig("Mode"))
	x.profileUpdated, _ = harvest[func(extsdk.AgentProfile, extsdk.Context) error](i, "OnAgentProfileUpdated", observerSig)

	for _, name := range extsdk.EventNames() {
		if h, ok := harvest[func(extsdk.Event, extsdk.Context) (extsdk.Event, error)](i, name, handlerSig); ok {
			x.handlers[name] = h
		}
	}
	return x
}

const (
	lifecycleSig = "(" + sdkAlias + ".Context) error"
	observerSig  = "(" + sdkAlias + ".AgentProfile, " + sdkAlias + ".Context) error"
	handlerSig   = "(" + sdkAlias + ".Event, " + sdkAlias + ".Context) (" + sdkAlias + ".Event, error)"
)

func providerSig(kind string) string {
	return "(" + sdkAlias + ".Context) ([]" + sdkAlias + "." + kind + ", error)"
}

// harvest evaluates an expression that asserts the instance against a
// single-method interface and returns the method value, then asserts the
// crossed-over value to the matching host func type. Both legs use the
// mechanism the constructor lookup relies on: yaegi wraps interpreted
// functions whose parameter and result types are host types into callable
// host functions.
func harvest[T any](i *interp.Interpreter, method, sig string) (T, bool) {
	var zero T
	expr := fmt.Sprintf(`func() func%[2]s {
	v, ok := %[3]s.(interface{ %[1]s%[2]s })
	if !ok {
		return nil
	}
	return v.%[1]s
}()`, method, sig, instanceVar)

	val, err := i.Eval(expr)
	if err != nil || !val.IsValid() {
		return zero, false
	}
	fn, ok := val.Interface().(T)
	if !ok {
		return zero, false
	}
	if rv := reflect.ValueOf(fn); rv.Kind() != reflect.Func || rv.IsNil() {
		return zero, false
	}
	return fn, true
}
