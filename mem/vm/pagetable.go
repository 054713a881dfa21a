// Package vm defines the virtual memory concepts that the TLB simulator
// translates between.
package vm

// DefaultLog2NumPhysicalPages is the size of the physical page space as a
// power of 2. 14 bits give 16384 physical pages.
const DefaultLog2NumPhysicalPages = 14

// A PageTable resolves the physical page number of a virtual page number
// when the TLB cannot provide the translation.
type PageTable interface {
	// Walk returns the physical page number that vpn maps to. Walk never
	// fails for any vpn.
	Walk(vpn uint64) (ppn uint64)
}

// ModuloPageTable is a stand-in for a real page-table walk. It maps a virtual
// page to the physical page vpn mod NumPhysicalPages. The result depends on
// the vpn only, so repeated walks always agree.
type ModuloPageTable struct {
	numPhysicalPages uint64
}

// NewModuloPageTable creates a ModuloPageTable with 2^log2NumPhysicalPages
// physical pages.
func NewModuloPageTable(log2NumPhysicalPages uint64) *ModuloPageTable {
	if log2NumPhysicalPages >= 64 {
		panic("physical page space must be smaller than 2^64")
	}

	return &ModuloPageTable{
		numPhysicalPages: 1 << log2NumPhysicalPages,
	}
}

// NumPhysicalPages returns the number of physical pages the table maps into.
func (pt *ModuloPageTable) NumPhysicalPages() uint64 {
	return pt.numPhysicalPages
}

// Walk returns vpn mod NumPhysicalPages.
func (pt *ModuloPageTable) Walk(vpn uint64) uint64 {
	return vpn % pt.numPhysicalPages
}
