// Package adapter supplies the per-dimension equality and hashing
// contract a relation.Relation needs to store and compare tuples of
// caller-chosen type T, generalized from the teacher's single fixed
// key.Key type (github.com/lleo/go-hamt-functional/key_interface.go) to
// an arbitrary rank R tuple with one projector-function pair per
// dimension.
package adapter

import (
	"fmt"
	"hash/maphash"

	"github.com/c80k/immutablerelations/relerr"
)

// Adapter describes how a relation of tuples of type T compares and
// hashes those tuples, dimension by dimension.
//
// Invariant (spec.md §3): Equal(a,b) implies ItemEqual(a,b,d) and
// ItemHash(a,d) == ItemHash(b,d) for every dimension d. Adapters built
// with the constructors in this package uphold the ItemEqual half by
// construction, since Equal is defined as the conjunction of every
// ItemEqual; the ItemHash half holds when each caller-supplied hash
// agrees with its equal function, as the pairs built by Project do.
type Adapter[T any] interface {
	// Rank reports the tuple arity R.
	Rank() int
	// Equal reports whether a and b are the same tuple in every
	// dimension.
	Equal(a, b T) bool
	// ItemEqual reports whether a and b agree in dimension dim. Panics
	// with relerr.InvalidDimension if dim is out of [0, Rank()).
	ItemEqual(a, b T, dim int) bool
	// ItemHash returns the hash of dimension dim of t. Panics with
	// relerr.InvalidDimension if dim is out of [0, Rank()).
	ItemHash(t T, dim int) uint64
}

type dimFuncs[T any] struct {
	equal func(a, b T) bool
	hash  func(t T) uint64
}

// genericAdapter implements Adapter[T] over an arbitrary slice of
// per-dimension equal/hash function pairs. NewUnary, NewBinary, and
// NewTernary are thin, named convenience wrappers over this, matching
// the arity-1/2/3 constructors spec.md §4.1 calls for; NewN is the
// rank-R generalization spec.md §9 calls out.
type genericAdapter[T any] struct {
	dims []dimFuncs[T]
}

func (a *genericAdapter[T]) Rank() int { return len(a.dims) }

func (a *genericAdapter[T]) checkDim(dim int) {
	if dim < 0 || dim >= len(a.dims) {
		panic(relerr.InvalidDimensionf("dimension %d out of range [0, %d)", dim, len(a.dims)))
	}
}

func (a *genericAdapter[T]) Equal(x, y T) bool {
	for d := range a.dims {
		if !a.dims[d].equal(x, y) {
			return false
		}
	}
	return true
}

func (a *genericAdapter[T]) ItemEqual(x, y T, dim int) bool {
	a.checkDim(dim)
	return a.dims[dim].equal(x, y)
}

func (a *genericAdapter[T]) ItemHash(t T, dim int) uint64 {
	a.checkDim(dim)
	return a.dims[dim].hash(t)
}

// NewN builds a rank-len(equals) Adapter[T] from one equal/hash
// function pair per dimension. equals and hashes must have the same,
// non-zero length. A nil entry in either slice panics with
// relerr.InvalidArgument; no natural-equality or natural-hash default
// is substituted for it (Project builds such a pair from a projector).
func NewN[T any](equals []func(a, b T) bool, hashes []func(t T) uint64) Adapter[T] {
	if len(equals) == 0 || len(equals) != len(hashes) {
		panic(relerr.InvalidArgumentf(
			"NewN: equals and hashes must be non-empty and equal length, got %d and %d",
			len(equals), len(hashes)))
	}

	dims := make([]dimFuncs[T], len(equals))
	for i := range equals {
		eq := equals[i]
		h := hashes[i]
		if eq == nil {
			panic(relerr.InvalidArgumentf("NewN: equals[%d] is nil", i))
		}
		if h == nil {
			panic(relerr.InvalidArgumentf("NewN: hashes[%d] is nil", i))
		}
		dims[i] = dimFuncs[T]{equal: eq, hash: h}
	}
	return &genericAdapter[T]{dims: dims}
}

// NewUnary builds a rank-1 Adapter[T], reducing the relation to a
// persistent hash set over T (spec.md §4.1).
func NewUnary[T any](equal func(a, b T) bool, hash func(t T) uint64) Adapter[T] {
	return NewN[T]([]func(a, b T) bool{equal}, []func(t T) uint64{hash})
}

// NewBinary builds a rank-2 Adapter[T] from one equal/hash pair per
// dimension.
func NewBinary[T any](
	equal0 func(a, b T) bool, hash0 func(t T) uint64,
	equal1 func(a, b T) bool, hash1 func(t T) uint64,
) Adapter[T] {
	return NewN[T](
		[]func(a, b T) bool{equal0, equal1},
		[]func(t T) uint64{hash0, hash1},
	)
}

// NewTernary builds a rank-3 Adapter[T] from one equal/hash pair per
// dimension.
func NewTernary[T any](
	equal0 func(a, b T) bool, hash0 func(t T) uint64,
	equal1 func(a, b T) bool, hash1 func(t T) uint64,
	equal2 func(a, b T) bool, hash2 func(t T) uint64,
) Adapter[T] {
	return NewN[T](
		[]func(a, b T) bool{equal0, equal1, equal2},
		[]func(t T) uint64{hash0, hash1, hash2},
	)
}

// Project builds a per-dimension equal/hash pair out of a projector
// function (T -> E) and E's natural equality/hash, for the common case
// of a tuple struct whose dimension is itself a comparable value. This
// is the composition the teacher's per-arity constructors perform by
// hand for each concrete key type; Project makes it generic.
func Project[T any, E comparable](get func(T) E) (func(a, b T) bool, func(t T) uint64) {
	equal := func(a, b T) bool {
		return get(a) == get(b)
	}
	hash := func(t T) uint64 {
		return hashComparable(get(t))
	}
	return equal, hash
}

var maphashSeed = maphash.MakeSeed()

// hashComparable hashes an arbitrary comparable value without
// reflection-heavy machinery, by hashing its fmt-free byte
// representation for the common scalar cases and falling back to a
// stable string encoding otherwise. Mirrors the teacher's "natural
// hash" fallback when no caller-supplied hash function is given.
func hashComparable[E comparable](v E) uint64 {
	var h maphash.Hash
	h.SetSeed(maphashSeed)
	writeComparable(&h, v)
	return h.Sum64()
}

func writeComparable(h *maphash.Hash, v interface{}) {
	switch x := v.(type) {
	case string:
		h.WriteString(x)
	case []byte:
		h.Write(x)
	case int:
		writeUint64(h, uint64(x))
	case int8:
		writeUint64(h, uint64(x))
	case int16:
		writeUint64(h, uint64(x))
	case int32:
		writeUint64(h, uint64(x))
	case int64:
		writeUint64(h, uint64(x))
	case uint:
		writeUint64(h, uint64(x))
	case uint8:
		writeUint64(h, uint64(x))
	case uint16:
		writeUint64(h, uint64(x))
	case uint32:
		writeUint64(h, uint64(x))
	case uint64:
		writeUint64(h, x)
	case bool:
		if x {
			writeUint64(h, 1)
		} else {
			writeUint64(h, 0)
		}
	default:
		h.WriteString(defaultFormat(v))
	}
}

func writeUint64(h *maphash.Hash, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
}

// defaultFormat is the last-resort stable encoding for comparable
// types this package doesn't special-case directly (e.g. caller-defined
// named scalar types, pointers, structs of comparable fields).
func defaultFormat(v interface{}) string {
	return fmt.Sprintf("%#v", v)
}
