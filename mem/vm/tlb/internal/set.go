// Package internal provides the definition required for defining TLB.
package internal

import "fmt"

// An Entry is a cached translation from a virtual page to a physical page.
type Entry struct {
	VPN uint64
	PPN uint64
}

// A Set holds a bounded number of entries and replaces them in the order they
// were inserted.
type Set interface {
	// Lookup returns the entry of the vpn. It does not change the eviction
	// order.
	Lookup(vpn uint64) (entry Entry, found bool)

	// Insert adds an entry. If the set is full, the oldest entry is evicted
	// first and returned as the victim.
	Insert(entry Entry) (victim Entry, evicted bool)

	// Len returns the number of entries currently held.
	Len() int

	// Capacity returns the maximum number of entries.
	Capacity() int

	// Entries returns a copy of the entries, oldest first.
	Entries() []Entry
}

// NewSet creates a new TLB set with numWays entries.
func NewSet(numWays int) Set {
	if numWays < 1 {
		panic(fmt.Sprintf("a set needs at least 1 way, got %d", numWays))
	}

	s := &fifoSet{}
	s.numWays = numWays
	s.queue = make([]Entry, 0, numWays)
	s.vpnToPPN = make(map[uint64]uint64, numWays)

	return s
}

// fifoSet keeps the entries in a queue for eviction and in a map for lookup.
type fifoSet struct {
	numWays  int
	queue    []Entry
	vpnToPPN map[uint64]uint64
}

func (s *fifoSet) Lookup(vpn uint64) (Entry, bool) {
	ppn, found := s.vpnToPPN[vpn]
	if !found {
		return Entry{}, false
	}

	return Entry{VPN: vpn, PPN: ppn}, true
}

func (s *fifoSet) Insert(entry Entry) (victim Entry, evicted bool) {
	s.entryMustNotExist(entry.VPN)

	if len(s.queue) >= s.numWays {
		victim = s.evict()
		evicted = true
	}

	s.queue = append(s.queue, entry)
	s.vpnToPPN[entry.VPN] = entry.PPN

	return victim, evicted
}

func (s *fifoSet) evict() Entry {
	oldest := s.queue[0]
	s.queue = s.queue[1:]
	delete(s.vpnToPPN, oldest.VPN)

	return oldest
}

func (s *fifoSet) entryMustNotExist(vpn uint64) {
	if _, found := s.vpnToPPN[vpn]; found {
		panic(fmt.Sprintf("vpn %d is already cached", vpn))
	}
}

func (s *fifoSet) Len() int {
	return len(s.queue)
}

func (s *fifoSet) Capacity() int {
	return s.numWays
}

func (s *fifoSet) Entries() []Entry {
	entries := make([]Entry, len(s.queue))
	copy(entries, s.queue)

	return entries
}
