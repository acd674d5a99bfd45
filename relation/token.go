package relation

// token is the mutability owner identity described in spec.md §3/§4.9.
// A node carrying a nil owner is frozen; a node carrying a non-nil
// owner belongs exclusively to the bulk batch (or single top-level
// call) holding that *token.
//
// Grounded on rogpeppe-generic__ctrie.go's generation type: "a
// heap-allocated reference instead of an integer to avoid integer
// overflows... two distinct zero-size variables may have the same
// address in memory" -- the same source warns that a truly zero-size
// struct can share runtime.zerobase's address across every allocation,
// which would make every *token compare equal and defeat pointer
// identity entirely. The non-zero field keeps each newToken() call a
// distinct heap allocation with a distinct address.
type token struct{ _ bool }

// newToken mints a fresh, unique owner token for one bulk batch or one
// top-level (non-batch) mutating call.
func newToken() *token {
	return new(token)
}
