package tlb

import (
	"github.com/sarchlab/tlbsim/mem/vm/tlb/internal"
	"github.com/sarchlab/tlbsim/sim/hooking"
)

// An Entry is a cached VPN to PPN translation.
type Entry = internal.Entry

// Hook positions that a TLB triggers. Hit and miss hooks carry the looked up
// Entry as the item (only the VPN is set on a miss). Insert and evict hooks
// carry the inserted and the evicted Entry.
var (
	HookPosTLBHit    = &hooking.HookPos{Name: "TLBHit"}
	HookPosTLBMiss   = &hooking.HookPos{Name: "TLBMiss"}
	HookPosTLBInsert = &hooking.HookPos{Name: "TLBInsert"}
	HookPosTLBEvict  = &hooking.HookPos{Name: "TLBEvict"}
)

// Comp is a fully associative TLB that maintains at most numWays
// translations and replaces them first-in-first-out.
type Comp struct {
	hooking.HookableBase

	name    string
	numWays int
	set     internal.Set
}

// Name returns the name of the TLB.
func (c *Comp) Name() string {
	return c.name
}

// Lookup returns the cached PPN of the vpn. The bool return value indicates
// if the translation is cached. Lookups never change the eviction order, so
// an entry that is looked up often is still evicted when it becomes the
// oldest.
func (c *Comp) Lookup(vpn uint64) (ppn uint64, found bool) {
	entry, found := c.set.Lookup(vpn)
	if !found {
		c.invoke(HookPosTLBMiss, Entry{VPN: vpn})
		return 0, false
	}

	c.invoke(HookPosTLBHit, entry)

	return entry.PPN, true
}

// Insert caches a translation, evicting the oldest translation first if the
// TLB is full. The vpn must not be cached already; callers insert only after
// a Lookup has missed.
func (c *Comp) Insert(vpn, ppn uint64) {
	entry := Entry{VPN: vpn, PPN: ppn}

	victim, evicted := c.set.Insert(entry)
	if evicted {
		c.invoke(HookPosTLBEvict, victim)
	}

	c.invoke(HookPosTLBInsert, entry)
}

// Len returns the number of cached translations.
func (c *Comp) Len() int {
	return c.set.Len()
}

// Capacity returns the maximum number of cached translations.
func (c *Comp) Capacity() int {
	return c.numWays
}

// Entries returns the cached translations, oldest first.
func (c *Comp) Entries() []Entry {
	return c.set.Entries()
}

func (c *Comp) invoke(pos *hooking.HookPos, entry Entry) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   entry,
	})
}
