package simulation

import "github.com/sarchlab/tlbsim/sim/hooking"

// A Translation is the outcome of translating one virtual page.
type Translation struct {
	VPN   uint64
	PPN   uint64
	IsHit bool
}

// A Summary aggregates the translations of one run.
type Summary struct {
	RunID        string
	TotalLookups int
	Hits         int
	HitRatio     float64
	Translations []Translation
}

// Misses returns the number of translations that required a page-table walk.
func (s Summary) Misses() int {
	return s.TotalLookups - s.Hits
}

// RunInfo identifies a run and the position of a translation in it.
type RunInfo struct {
	RunID      string
	Step       int
	NumLookups int
}

// Hook positions that a Simulation triggers.
//
// HookPosRunStart carries a RunInfo as the item. HookPosTranslation carries
// the Translation as the item and the RunInfo as the detail.
// HookPosRunEnd carries the Summary as the item and the RunInfo as the
// detail.
var (
	HookPosRunStart    = &hooking.HookPos{Name: "RunStart"}
	HookPosTranslation = &hooking.HookPos{Name: "Translation"}
	HookPosRunEnd      = &hooking.HookPos{Name: "RunEnd"}
)
