package hooking

import (
	"log"
)

// A LogHook prints one line for every hook invocation it receives.
type LogHook struct {
	*log.Logger
}

// NewLogHook creates a LogHook that writes with the given logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func prints the position, the domain and the item of the hook.
func (h *LogHook) Func(ctx HookCtx) {
	if ctx.Detail == nil {
		h.Printf("[%s] %s %+v", DomainName(ctx), ctx.Pos.Name, ctx.Item)
		return
	}

	h.Printf("[%s] %s %+v %+v",
		DomainName(ctx), ctx.Pos.Name, ctx.Item, ctx.Detail)
}
