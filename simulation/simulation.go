// Package simulation drives sequences of virtual page numbers through a TLB.
package simulation

import (
	"errors"

	"github.com/rs/xid"
	"github.com/sarchlab/tlbsim/mem/vm"
	"github.com/sarchlab/tlbsim/mem/vm/tlb"
	"github.com/sarchlab/tlbsim/sim/hooking"
)

// ErrEmptySequence is the panic value of Run when it is given no VPN. Callers
// must validate their input so that at least one VPN is translated; a hit
// ratio over zero lookups is undefined.
var ErrEmptySequence = errors.New("simulation: at least one VPN is required")

// A Simulation owns one TLB and translates VPNs through it. The TLB keeps its
// contents between runs; build a new Simulation to start from an empty TLB.
type Simulation struct {
	hooking.HookableBase

	name      string
	tlb       *tlb.Comp
	pageTable vm.PageTable
}

// Name returns the name of the simulation.
func (s *Simulation) Name() string {
	return s.name
}

// TLB returns the TLB owned by the simulation. Callers may inspect it but
// must not insert into it.
func (s *Simulation) TLB() *tlb.Comp {
	return s.tlb
}

// Run translates the vpns in order and summarizes the outcomes. The outcome of
// a VPN depends only on the VPNs before it. Run panics with ErrEmptySequence
// if vpns is empty.
func (s *Simulation) Run(vpns []uint64) Summary {
	if len(vpns) == 0 {
		panic(ErrEmptySequence)
	}

	info := RunInfo{
		RunID:      xid.New().String(),
		NumLookups: len(vpns),
	}
	s.invoke(HookPosRunStart, info, nil)

	translations := make([]Translation, 0, len(vpns))
	hits := 0

	for i, vpn := range vpns {
		t := s.translate(vpn)
		translations = append(translations, t)

		if t.IsHit {
			hits++
		}

		info.Step = i
		s.invoke(HookPosTranslation, t, info)
	}

	summary := Summary{
		RunID:        info.RunID,
		TotalLookups: len(translations),
		Hits:         hits,
		HitRatio:     float64(hits) / float64(len(translations)),
		Translations: translations,
	}
	s.invoke(HookPosRunEnd, summary, info)

	return summary
}

func (s *Simulation) translate(vpn uint64) Translation {
	ppn, found := s.tlb.Lookup(vpn)
	if found {
		return Translation{VPN: vpn, PPN: ppn, IsHit: true}
	}

	ppn = s.pageTable.Walk(vpn)
	s.tlb.Insert(vpn, ppn)

	return Translation{VPN: vpn, PPN: ppn, IsHit: false}
}

func (s *Simulation) invoke(pos *hooking.HookPos, item, detail interface{}) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
