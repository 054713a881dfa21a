// Package tracing provides hooks that collect what happened in a simulation.
package tracing

import (
	"sync"

	"github.com/sarchlab/tlbsim/sim/hooking"
)

// A HookFilter decides if a hook invocation should be traced.
type HookFilter func(ctx hooking.HookCtx) bool

// TagCountTracer counts how many times each hook position is triggered.
type TagCountTracer struct {
	filter HookFilter
	lock   sync.Mutex

	tagNames []string
	tagCount map[string]uint64
}

// NewTagCountTracer creates a new TagCountTracer. A nil filter counts every
// invocation.
func NewTagCountTracer(filter HookFilter) *TagCountTracer {
	t := &TagCountTracer{
		filter:   filter,
		tagCount: make(map[string]uint64),
	}

	return t
}

// Func counts the position of the hook.
func (t *TagCountTracer) Func(ctx hooking.HookCtx) {
	if t.filter != nil && !t.filter(ctx) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.countTag(ctx.Pos.Name)
}

// GetTagNames returns all the tag names collected, in the order they were
// first seen.
func (t *TagCountTracer) GetTagNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.tagNames))
	copy(names, t.tagNames)

	return names
}

// GetTagCount returns the number of times a tag is recorded.
func (t *TagCountTracer) GetTagCount(tagName string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.tagCount[tagName]
}

func (t *TagCountTracer) countTag(tagName string) {
	_, ok := t.tagCount[tagName]
	if !ok {
		t.tagNames = append(t.tagNames, tagName)
	}

	t.tagCount[tagName]++
}
