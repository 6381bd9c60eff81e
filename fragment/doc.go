// Package fragment resolves the physics level of detail of a fragmented
// object and exposes the per-child masses the host uses when the object
// breaks apart.
//
// The chain is a sequence of owned pointers:
//
//	Inst -> Type -> LOD group -> LOD[selector] -> children[i] -> TypeChild
//
// A null pointer anywhere ends resolution. The host keeps three LOD slots per
// group and picks one with a small integer selector stored on the instance.
package fragment
