package relation

import (
	"fmt"
	"strings"

	"github.com/c80k/immutablerelations/adapter"
)

// bucketCount is B from spec.md §3/§4.3: the fixed fan-out of every
// node. bucketBits is S, the number of hash bits consumed per level
// within one dimension (log2(bucketCount)).
const (
	bucketBits  = 3
	bucketCount = 1 << bucketBits
)

// bucket is one of a node's B fixed slots. Per spec.md §3 it can
// independently hold an inline tuple and/or a child subtree; the only
// combination that cannot occur is "child but no inline tuple", since
// a child is only ever created to hold an overflow from an occupied
// inline slot (spec.md §4.4's inline-displacement rule).
type bucket[T any] struct {
	itemValid bool
	item      T
	child     *node[T]
}

// node is the persistent trie node (spec.md §3's "Relation node").
// Grounded on hamt32/node.go + hamt32/table.go's nodeI/tableI split,
// generalized from a single cached key-hashcode keyed 5-bit/32-way
// fan-out to a rotating-dimension, per-level-mixed 3-bit/8-way fan-out
// over adapter.ItemHash(t, dim).
type node[T any] struct {
	adapter adapter.Adapter[T]
	dim     int
	level   int
	count   int
	buckets [bucketCount]bucket[T]
	owner   *token
}

func newNode[T any](a adapter.Adapter[T], dim, level int, owner *token) *node[T] {
	return &node[T]{adapter: a, dim: dim, level: level, owner: owner}
}

// nextDimLevel implements the rotation rule from spec.md §4.3: rotate
// through dimensions round-robin, bumping level on each full pass.
func nextDimLevel(dim, level, rank int) (int, int) {
	if dim+1 < rank {
		return dim + 1, level
	}
	return 0, level + 1
}

// mixHash applies a splitmix64-style avalanche finalizer folded with
// the level number before bit-slicing, resolving spec.md §9's "hash
// exhaustion for dim >= 2" open question via option (b): a per-level
// mixing hash rather than literally caching-then-zeroing the
// dimension's hash on a second pass. See SPEC_FULL.md §4.3/DESIGN.md.
func mixHash(h uint64, level int) uint64 {
	h ^= uint64(level)*0x9E3779B97F4A7C15 + 0x9E3779B97F4A7C15
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// bucketIndexOf computes bucket_index for the raw dimension hash h at
// the given level: the low S bits of mixHash(h, level). h is not
// shifted by S*level; the level enters only through the mixer.
func bucketIndexOf(h uint64, level int) int {
	return int(mixHash(h, level) & (bucketCount - 1))
}

func (n *node[T]) bucketIndexForTuple(t T) int {
	h := n.adapter.ItemHash(t, n.dim)
	return bucketIndexOf(h, n.level)
}

// mutableCopy returns a node usable in-place under owner: n itself if
// it is already owned by owner (owner is non-nil and identical), or a
// shallow copy stamped with owner otherwise. Because buckets is a
// fixed Go array (not a slice), copying the node struct by value
// already duplicates the whole bucket table -- the bucket entries
// themselves (tuple values, child pointers) are shared, only the
// top-level array is new, which is exactly the "shallow-copied if
// needed" persistence spec.md §4.4 step 2 describes.
func (n *node[T]) mutableCopy(owner *token) *node[T] {
	if owner != nil && n.owner == owner {
		return n
	}
	cp := *n
	cp.owner = owner
	return &cp
}

// at implements the indexed-access traversal from spec.md §4.8:
// buckets 0..B-1 in order, inline tuple first, then the child
// subtree's tuples in the same recursive order.
func (n *node[T]) at(i int) (T, bool) {
	for idx := range n.buckets {
		b := &n.buckets[idx]
		if b.itemValid {
			if i == 0 {
				return b.item, true
			}
			i--
		}
		if b.child != nil {
			if i < b.child.count {
				return b.child.at(i)
			}
			i -= b.child.count
		}
	}
	var zero T
	return zero, false
}

func (n *node[T]) String() string {
	if n == nil {
		return "node{nil}"
	}
	bm := occupancyBitmap(n.buckets)
	return fmt.Sprintf("node{dim:%d, level:%d, count:%d, occupancy:%08b, inline:%d/%d}",
		n.dim, n.level, n.count, bm, popcount8(bm), bucketCount)
}

// LongString renders a full recursive dump of the subtree rooted at
// n, in the style of hamt32/compressed_table.go's LongString.
func (n *node[T]) LongString(indent string) string {
	if n == nil {
		return indent + "node{nil}"
	}
	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteString(n.String())
	sb.WriteString("\n")
	for i := range n.buckets {
		b := &n.buckets[i]
		if !b.itemValid && b.child == nil {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(fmt.Sprintf("  bucket[%d]: itemValid=%v", i, b.itemValid))
		if b.itemValid {
			sb.WriteString(fmt.Sprintf(" item=%v", b.item))
		}
		sb.WriteString("\n")
		if b.child != nil {
			sb.WriteString(b.child.LongString(indent + "    "))
		}
	}
	return sb.String()
}
