// Package types holds the error taxonomy shared by the layoutkit decoders.
//
// Decoders resolve invalid handles, null pointers and unknown bit patterns to
// sentinel values (0, false, -1) locally. Only configuration mistakes and
// memory-source failures travel as errors, and those carry an ErrKind so callers
// can tell "not found" from "misconfigured" without matching text.
//
// This package has no dependencies beyond the standard library.
package types
