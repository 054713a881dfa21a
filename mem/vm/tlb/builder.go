package tlb

import (
	"fmt"

	"github.com/sarchlab/tlbsim/mem/vm/tlb/internal"
)

// DefaultNumWays is the number of entries a TLB holds unless configured
// otherwise.
const DefaultNumWays = 4

// A Builder can build TLBs
type Builder struct {
	numWays int
}

// MakeBuilder returns a Builder
func MakeBuilder() Builder {
	return Builder{
		numWays: DefaultNumWays,
	}
}

// WithNumWays sets the number of entries in the TLB.
func (b Builder) WithNumWays(n int) Builder {
	b.numWays = n
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.numWays < 1 {
		panic(fmt.Sprintf("TLB needs at least 1 way, got %d", b.numWays))
	}
}

// Build creates a new, empty TLB.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	tlb := &Comp{
		name:    name,
		numWays: b.numWays,
	}
	tlb.set = internal.NewSet(b.numWays)

	return tlb
}
