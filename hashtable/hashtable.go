// Package hashtable reads the host's open-hash tables: an array of bucket
// heads, each the start of a singly linked chain of (hash, value, next)
// entries. A key k lives in bucket k mod bucketCount.
//
// The table is read-only here; the host owns its contents and may rewrite a
// chain while it is being walked. Walks are therefore capped at the table's
// element count (and Limits.MaxChain), which also defuses cycles from torn
// reads.
package hashtable

import (
	"fmt"
	"iter"

	"github.com/joshuapare/layoutkit/layout"
	"github.com/joshuapare/layoutkit/mem"
	"github.com/joshuapare/layoutkit/pkg/types"
)

// Table is a view over one hash table header.
type Table struct {
	r            mem.Reader
	buckets      mem.Addr
	bucketCount  uint32
	elementCount uint32
	l            layout.HashTable
	limits       layout.Limits
}

// Entry is one decoded chain entry.
type Entry struct {
	Hash  uint32
	Value uint64
}

// Open reads the table header at addr. An unreadable header yields an empty
// table, which fails every lookup closed.
func Open(r mem.Reader, addr mem.Addr, l layout.HashTable, limits layout.Limits) Table {
	return Table{
		r:            r,
		buckets:      mem.Ptr(r, addr.Offset(l.Buckets)),
		bucketCount:  uint32(mem.U16(r, addr.Offset(l.BucketCount))),
		elementCount: uint32(mem.U16(r, addr.Offset(l.ElementCount))),
		l:            l,
		limits:       limits.WithDefaults(),
	}
}

// BucketCount returns the number of bucket heads.
func (t Table) BucketCount() uint32 { return t.bucketCount }

// ElementCount returns the number of entries the host claims to hold.
func (t Table) ElementCount() uint32 { return t.elementCount }

// Empty reports whether the table holds no elements.
func (t Table) Empty() bool { return t.elementCount == 0 }

func (t Table) maxHops() int {
	return min(int(t.elementCount), t.limits.MaxChain)
}

func (t Table) value(entry mem.Addr) uint64 {
	at := entry.Offset(t.l.EntryValue)
	if t.l.ValueSize == 8 {
		return mem.U64(t.r, at)
	}
	return uint64(mem.U32(t.r, at))
}

// Get returns the value stored under hash. A table with zero buckets, an
// empty chain, or a chain without a match all report not found.
func (t Table) Get(hash uint32) (uint64, bool) {
	if t.bucketCount == 0 {
		return 0, false
	}
	head := mem.Ptr(t.r, t.buckets.Index(uint64(hash%t.bucketCount), 8))
	hops := t.maxHops()
	for e := head; e != 0 && hops > 0; hops-- {
		if mem.U32(t.r, e.Offset(t.l.EntryHash)) == hash {
			return t.value(e), true
		}
		e = mem.Ptr(t.r, e.Offset(t.l.EntryNext))
	}
	return 0, false
}

// Lookup is Get for callers whose configuration promised a populated table:
// zero buckets is reported as types.ErrNoBuckets (ErrKindConfig) instead of
// an ordinary types.ErrNotFound miss.
func (t Table) Lookup(hash uint32) (uint64, error) {
	if t.bucketCount == 0 {
		return 0, types.ErrNoBuckets.Wrap(fmt.Errorf("lookup 0x%08x in table at %s", hash, t.buckets))
	}
	v, ok := t.Get(hash)
	if !ok {
		return 0, types.ErrNotFound.Wrap(fmt.Errorf("hash 0x%08x", hash))
	}
	return v, nil
}

// Entries yields every entry bucket by bucket, stopping after ElementCount
// entries or Limits.MaxChain, whichever comes first.
func (t Table) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		remaining := t.maxHops()
		buckets := min(int(t.bucketCount), t.limits.MaxBuckets)
		for b := 0; b < buckets && remaining > 0; b++ {
			e := mem.Ptr(t.r, t.buckets.Index(uint64(b), 8))
			for ; e != 0 && remaining > 0; remaining-- {
				if !yield(Entry{Hash: mem.U32(t.r, e.Offset(t.l.EntryHash)), Value: t.value(e)}) {
					return
				}
				e = mem.Ptr(t.r, e.Offset(t.l.EntryNext))
			}
		}
	}
}
