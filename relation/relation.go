// Package relation implements the persistent n-ary relation described
// by spec.md: an immutable, structurally-shared multi-dimensional hash
// trie over fixed-arity tuples, with partial-key find/remove and a
// transient bulk mode. It is the ~85%-of-the-budget core component
// (spec.md §2); adapter and matcher are its two upstream collaborators.
//
// Grounded throughout on github.com/lleo/go-hamt-functional/hamt32 --
// see DESIGN.md for the file-by-file accounting of what was adapted
// from where.
package relation

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/c80k/immutablerelations/adapter"
	"github.com/c80k/immutablerelations/matcher"
	"github.com/c80k/immutablerelations/relerr"
)

// Relation is an immutable, persistent set of rank-R tuples of type T.
// The zero value is not usable; construct one with Create.
//
// Grounded on hamt32/hamt.go's Hamt struct (root tableI, nentries
// uint), generalized to carry an Adapter[T], a config, and a uuid
// identity for log/trace correlation (SPEC_FULL.md §6).
type Relation[T any] struct {
	adapter adapter.Adapter[T]
	root    *node[T]
	cfg     config
	id      uuid.UUID
}

// Create returns a new, empty, frozen Relation over the given
// adapter. Panics with relerr.InvalidArgument if a is nil.
func Create[T any](a adapter.Adapter[T], opts ...Option) Relation[T] {
	if a == nil {
		panic(relerr.InvalidArgumentf("Create: adapter must not be nil"))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return Relation[T]{adapter: a, root: nil, cfg: cfg, id: uuid.New()}
}

// ID returns a per-instance identifier minted by Create and by every
// Add, Remove, RemoveMatching or Bulk call that returns a new Relation;
// a call that returns r unchanged keeps r's ID. It appears in String
// and LongString output (SPEC_FULL.md §6) -- it is not part of the
// tuple data and carries no other meaning.
func (r Relation[T]) ID() uuid.UUID {
	return r.id
}

// Count returns the number of tuples stored in r.
func (r Relation[T]) Count() int {
	if r.root == nil {
		return 0
	}
	return r.root.count
}

// IsEmpty reports whether r holds no tuples.
func (r Relation[T]) IsEmpty() bool {
	return r.Count() == 0
}

// At returns the tuple at the given deterministic per-instance index,
// per spec.md §4.8. Panics with relerr.IndexOutOfRange if i is outside
// [0, Count()).
func (r Relation[T]) At(i int) T {
	if i < 0 || i >= r.Count() {
		panic(relerr.IndexOutOfRangef("index %d out of range [0, %d)", i, r.Count()))
	}
	t, ok := r.root.at(i)
	if !ok {
		panic(relerr.IndexOutOfRangef("index %d out of range [0, %d)", i, r.Count()))
	}
	return t
}

func checkMatchers[T any](rank int, ms []matcher.Matcher[T]) {
	if len(ms) != rank {
		panic(relerr.InvalidArgumentf("expected %d matchers, got %d", rank, len(ms)))
	}
}

// Find returns a lazy sequence of every tuple in r satisfying every
// matcher in ms, one matcher per dimension, per spec.md §4.6. Panics
// with relerr.InvalidArgument if len(ms) != the adapter's rank.
func (r Relation[T]) Find(ms []matcher.Matcher[T]) iter.Seq[T] {
	checkMatchers(r.adapter.Rank(), ms)
	if r.root == nil {
		return func(yield func(T) bool) {}
	}
	return r.root.find(ms)
}

// All returns every tuple in r, the all-wildcard case of Find
// (spec.md §4.8: "enumeration (equivalent to find(all wildcards))").
func (r Relation[T]) All() iter.Seq[T] {
	return r.Find(matcher.AllWildcards[T](r.adapter.Rank()))
}

// Add returns a new Relation with t inserted, or r itself (same root
// identity) if t was already present, per spec.md §4.4's result
// freshness. A fresh, single-use token drives the mutation exactly as
// a Bulk batch's token would; the result is frozen before it is
// returned (SPEC_FULL.md §4.9).
func (r Relation[T]) Add(t T) Relation[T] {
	tok := newToken()
	newRoot, grew := addToRoot(r.root, r.adapter, tok, t, &r.cfg)
	if !grew {
		return r
	}
	newRoot = freeze(newRoot, tok)
	return Relation[T]{adapter: r.adapter, root: newRoot, cfg: r.cfg, id: uuid.New()}
}

// Remove returns a new Relation with t removed, or r itself
// (unchanged) if t was not present.
func (r Relation[T]) Remove(t T) Relation[T] {
	if r.root == nil {
		return r
	}
	tok := newToken()
	newRoot, removed := r.root.remove(tok, t, &r.cfg)
	if !removed {
		return r
	}
	newRoot = freeze(newRoot, tok)
	if newRoot.count == 0 {
		newRoot = nil
	}
	return Relation[T]{adapter: r.adapter, root: newRoot, cfg: r.cfg, id: uuid.New()}
}

// RemoveMatching returns a new Relation with every tuple satisfying
// every matcher in ms removed, per spec.md §4.7. Equivalent to
// r minus the tuples r.Find(ms) would yield.
func (r Relation[T]) RemoveMatching(ms []matcher.Matcher[T]) Relation[T] {
	checkMatchers(r.adapter.Rank(), ms)
	if r.root == nil {
		return r
	}
	tok := newToken()
	newRoot, removed := r.root.removeMatching(tok, ms, &r.cfg)
	if removed == 0 {
		return r
	}
	newRoot = freeze(newRoot, tok)
	if newRoot.count == 0 {
		newRoot = nil
	}
	return Relation[T]{adapter: r.adapter, root: newRoot, cfg: r.cfg, id: uuid.New()}
}

// addToRoot adds t under owner, creating a root node if root is nil
// (the empty-relation case spec.md §4.4 implies but doesn't spell
// out: the very first Add into Create's empty result).
func addToRoot[T any](root *node[T], a adapter.Adapter[T], owner *token, t T, cfg *config) (*node[T], bool) {
	if root == nil {
		root = newNode[T](a, 0, 0, owner)
	}
	return root.add(owner, t, cfg)
}

func (r Relation[T]) String() string {
	return fmt.Sprintf("Relation{id:%s, rank:%d, count:%d}", r.id, r.adapter.Rank(), r.Count())
}

// LongString renders a full recursive dump of r's trie, in the style
// of hamt32/hamt.go's LongString.
func (r Relation[T]) LongString() string {
	if r.root == nil {
		return fmt.Sprintf("Relation{id:%s, rank:%d, count:0, root:nil}", r.id, r.adapter.Rank())
	}
	return fmt.Sprintf("Relation{id:%s, rank:%d, count:%d, root:\n%s}",
		r.id, r.adapter.Rank(), r.Count(), r.root.LongString("  "))
}
