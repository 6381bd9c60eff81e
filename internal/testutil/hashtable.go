package testutil

import (
	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
)

// Entry is one (hash, value) pair in a fake hash table.
type Entry struct {
	Hash  uint32
	Value uint64
}

// HashTable writes a table header at header whose bucket i holds the chain
// buckets[i] in order. The element count is the total number of entries.
// Entries are placed exactly where given, even if hash mod len(buckets)
// disagrees, so tests can model torn or misplaced chains.
func (h *Host) HashTable(header mem.Addr, l layout.HashTable, buckets [][]Entry) {
	h.t.Helper()
	heads := mem.Addr(0)
	if len(buckets) > 0 {
		heads = h.Alloc(len(buckets) * 8)
	}
	total := 0
	for i, chain := range buckets {
		next := mem.Addr(0)
		// Build back to front so each entry can point at its successor.
		for j := len(chain) - 1; j >= 0; j-- {
			e := h.Alloc(int(max(l.EntryNext+8, l.EntryValue+l.ValueSize)))
			h.PutU32(e.Offset(l.EntryHash), chain[j].Hash)
			if l.ValueSize == 8 {
				h.PutPtr(e.Offset(l.EntryValue), mem.Addr(chain[j].Value))
			} else {
				h.PutU32(e.Offset(l.EntryValue), uint32(chain[j].Value))
			}
			h.PutPtr(e.Offset(l.EntryNext), next)
			next = e
		}
		h.PutPtr(heads.Index(uint64(i), 8), next)
		total += len(chain)
	}
	h.PutPtr(header.Offset(l.Buckets), heads)
	h.PutU16(header.Offset(l.BucketCount), uint16(len(buckets)))
	h.PutU16(header.Offset(l.ElementCount), uint16(total))
}

// HashTableOf distributes entries over bucketCount buckets by hash mod
// bucketCount, preserving the given order within each chain.
func (h *Host) HashTableOf(header mem.Addr, l layout.HashTable, bucketCount int, entries []Entry) {
	h.t.Helper()
	buckets := make([][]Entry, bucketCount)
	for _, e := range entries {
		b := int(e.Hash % uint32(bucketCount))
		buckets[b] = append(buckets[b], e)
	}
	h.HashTable(header, l, buckets)
}
