// Package hooking lets observers attach to the TLB and to the simulation
// driver without changing what those components do.
package hooking

import (
	"fmt"
	"reflect"
)

// HookPos names a point in a component where hooks are invoked.
type HookPos struct {
	Name string
}

func (p *HookPos) String() string {
	return p.Name
}

// HookCtx describes one hook invocation. Item is what the position is about,
// such as a TLB entry or a translation. Detail carries extra data and may be
// nil.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is a component that hooks can attach to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Hook observes a Hookable. Hooks must not change the component that invokes
// them.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// A Named object can tell its name. Hooks use it to label the domain that
// triggered them.
type Named interface {
	Name() string
}

// HookableBase keeps the hooks of a component. Embed it to implement
// Hookable.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns the number of attached hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the attached hooks in the order they were attached.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook attaches a hook. Attaching the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	for _, existing := range h.hooks {
		if sameHook(existing, hook) {
			panic(fmt.Sprintf("hook %T is already attached", hook))
		}
	}

	h.hooks = append(h.hooks, hook)
}

// sameHook compares hooks by identity. Hooks of types that cannot be
// compared, such as HookFunc or structs holding slices, never count as
// duplicates.
func sameHook(a, b Hook) bool {
	typeA := reflect.TypeOf(a)
	if typeA != reflect.TypeOf(b) || !typeA.Comparable() {
		return false
	}

	return a == b
}

// InvokeHook calls every attached hook in order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

// DomainName returns the name of the domain that triggered the hook, or
// "unknown" if the domain cannot tell its name.
func DomainName(ctx HookCtx) string {
	named, ok := ctx.Domain.(Named)
	if !ok {
		return "unknown"
	}

	return named.Name()
}
