package extension

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// DispatchEvent sequentially invokes the named event handler on every
// eligible extension and returns the accumulated event.
//
// Ordering: global extensions first, in registration order, followed by
// extensions scoped to the current project, in registration order.
// Extensions belonging to other projects are excluded entirely.
//
// Semantics: dispatch starts from a shallow copy of the caller's event (the
// original is never mutated). Each handler's returned patch is shallow-
// merged onto the running event; later handlers see and can override
// earlier patches. A handler error is logged and treated as a no-op for
// that extension. Once the running event carries blocked=true, dispatch
// stops and returns immediately with every patch applied so far.
func (m *Manager) DispatchEvent(eventName string, event extsdk.Event, project extsdk.ProjectHost, task extsdk.TaskHost) (extsdk.Event, error) {
	if !extsdk.IsEventName(eventName) {
		return event, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName)
	}

	m.mu.Lock()
	m.stats.Dispatches++
	m.mu.Unlock()

	projectDir := ""
	if project != nil {
		projectDir = project.Dir()
	}
	ordered := orderForDispatch(m.registry.GetExtensions(projectDir))
	if len(ordered) == 0 {
		return event, nil
	}

	current := event.Clone()
	for _, ext := range ordered {
		if !ext.Initialized {
			continue
		}

		handler := resolveHandler(ext.Instance, eventName)
		if handler == nil {
			continue
		}

		ec := m.builder.Build(ext.Metadata.Name, project, task)
		patch, err := invokeHandler(handler, current, ec)
		if err != nil {
			m.logger.Error("event handler failed",
				zap.String("extension", ext.Metadata.Name),
				zap.String("event", eventName),
				zap.Error(err))
			continue
		}

		if patch != nil {
			current.Merge(patch)
		}

		if current.Blocked() {
			m.mu.Lock()
			m.stats.BlockedDispatches++
			m.mu.Unlock()
			m.logger.Info("event blocked by extension",
				zap.String("extension", ext.Metadata.Name),
				zap.String("event", eventName))
			return current, nil
		}
	}

	return current, nil
}

// orderForDispatch puts global extensions before project extensions while
// preserving registration order within each group. The input is already
// filtered to the current project plus globals.
func orderForDispatch(exts []*LoadedExtension) []*LoadedExtension {
	ordered := make([]*LoadedExtension, 0, len(exts))
	for _, ext := range exts {
		if ext.Global() {
			ordered = append(ordered, ext)
		}
	}
	for _, ext := range exts {
		if !ext.Global() {
			ordered = append(ordered, ext)
		}
	}
	return ordered
}

// resolveHandler looks up the event handler method by name on the instance
// and checks that it is callable with the uniform handler signature.
// Instances without the method, or with a mismatched signature, simply do
// not participate in this event. Interpreted instances carry their
// handlers on the loader's adapter; reflection cannot see them.
func resolveHandler(instance any, eventName string) extsdk.HandlerFunc {
	if instance == nil {
		return nil
	}
	if bridged, ok := instance.(*interpExtension); ok {
		return bridged.handler(eventName)
	}
	method := reflect.ValueOf(instance).MethodByName(eventName)
	if !method.IsValid() {
		return nil
	}
	fn, ok := method.Interface().(func(extsdk.Event, extsdk.Context) (extsdk.Event, error))
	if !ok {
		return nil
	}
	return fn
}

// invokeHandler runs one handler, converting a panic into an error so a
// crashing extension cannot take down the dispatch loop.
func invokeHandler(handler extsdk.HandlerFunc, ev extsdk.Event, ec extsdk.Context) (patch extsdk.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			patch = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ev, ec)
}
