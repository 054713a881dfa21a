package simulation

import (
	"github.com/sarchlab/tlbsim/mem/vm"
	"github.com/sarchlab/tlbsim/mem/vm/tlb"
)

// Builder can be used to build a simulation.
type Builder struct {
	numWays              int
	log2NumPhysicalPages uint64
	pageTable            vm.PageTable
}

// MakeBuilder creates a new builder with a 4-entry TLB and a 14-bit
// physical page space.
func MakeBuilder() Builder {
	return Builder{
		numWays:              tlb.DefaultNumWays,
		log2NumPhysicalPages: vm.DefaultLog2NumPhysicalPages,
	}
}

// WithNumWays sets the number of entries of the TLB.
func (b Builder) WithNumWays(n int) Builder {
	b.numWays = n
	return b
}

// WithLog2NumPhysicalPages sets the size of the physical page space that
// missed VPNs are mapped into, as a power of 2.
func (b Builder) WithLog2NumPhysicalPages(n uint64) Builder {
	b.log2NumPhysicalPages = n
	return b
}

// WithPageTable replaces the default modulo page table. When set,
// WithLog2NumPhysicalPages has no effect.
func (b Builder) WithPageTable(pt vm.PageTable) Builder {
	b.pageTable = pt
	return b
}

// Build builds the simulation with an empty TLB.
func (b Builder) Build(name string) *Simulation {
	s := &Simulation{
		name: name,
	}

	s.tlb = tlb.MakeBuilder().
		WithNumWays(b.numWays).
		Build(name + ".TLB")

	s.pageTable = b.pageTable
	if s.pageTable == nil {
		s.pageTable = vm.NewModuloPageTable(b.log2NumPhysicalPages)
	}

	return s
}
