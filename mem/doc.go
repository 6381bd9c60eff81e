// Package mem abstracts the memory of a foreign host process.
//
// Everything layoutkit decodes lives in memory it does not own: a live process,
// a dump file mapped as a snapshot, or an in-memory Buffer in tests. All three
// satisfy Memory. Addresses are opaque Addr values; the zero Addr is the null
// pointer and is never readable.
//
// Two families of helpers sit on top of Reader:
//
//   - U8/U16/U32/U64/I16/I32/F32/Ptr return the zero value when the read
//     fails. Decoders use these and turn zero into their own sentinels.
//   - ReadU8/ReadU16/ReadU32/ReadU64/ReadPtr return a *types.Error of kind
//     ErrKindUnavailable. Use these where a failed read must be reported.
//
// Writes go through PutU8/PutU16/PutU32/PutF32 and SetBit. SetBit performs a
// read-modify-write of a single byte and leaves the other bits untouched; the
// host may still race it, so no write assumes exclusive access.
package mem
