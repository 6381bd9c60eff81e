// Package pool resolves handles and indices into addresses inside the host's
// fixed-capacity object pools.
//
// Two pool shapes exist in the host:
//
//   - Slots keeps one occupancy byte per slot. The high bit marks the slot in
//     use and the low 7 bits count how often the slot was recycled. Handles
//     pack (index << 8) | generation, so a handle to a recycled slot stops
//     resolving even though its index is still in range.
//
//   - Bitmap keeps one occupancy bit per slot and no generation. It is used
//     where the host never hands out handles, only indices.
//
// The host owns both pools and mutates them between any two calls. Nothing
// here caches occupancy: every query re-reads it, and every failed query
// collapses to a sentinel (0 handle, null Addr, false).
package pool
