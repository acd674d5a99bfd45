package relation

import "github.com/c80k/immutablerelations/matcher"

// remove implements spec.md §4.5, single-tuple removal. Grounded on
// hamt32/hamt.go's Del plus hamt32/collision_leaf.go's del: the
// promote-a-survivor-on-delete behavior there (a 2-element
// collisionLeaf losing one entry collapses back to a flatLeaf holding
// the survivor) is generalized here to "pull element [0] of the
// child subtree up into the vacated inline slot", since a child here
// can hold arbitrarily many tuples, not just one.
func (n *node[T]) remove(owner *token, t T, cfg *config) (*node[T], bool) {
	idx := n.bucketIndexForTuple(t)
	b := n.buckets[idx]

	if !b.itemValid {
		return n, false
	}

	if n.adapter.Equal(b.item, t) {
		nn := n.mutableCopy(owner)
		if b.child == nil {
			nn.buckets[idx] = bucket[T]{}
			nn.count--
			cfg.logOccupancy("relation: node dim=%d level=%d bucket=%d cleared", n.dim, n.level, idx)
			return nn, true
		}

		promoted, ok := b.child.at(0)
		if !ok {
			panic("relation: child subtree reported non-zero count but at(0) found nothing")
		}
		newChild, _ := b.child.remove(owner, promoted, cfg)
		nn.buckets[idx] = bucket[T]{itemValid: true, item: promoted, child: emptyToNil(newChild)}
		nn.count--
		return nn, true
	}

	if b.child == nil {
		return n, false
	}

	newChild, removed := b.child.remove(owner, t, cfg)
	if !removed {
		return n, false
	}

	nn := n.mutableCopy(owner)
	nn.buckets[idx].child = emptyToNil(newChild)
	nn.count--
	return nn, true
}

// emptyToNil collapses a child subtree that has lost all of its
// tuples back to nil, per spec.md §4.5 step 4's "if the child became
// empty, null the bucket's child reference".
func emptyToNil[T any](n *node[T]) *node[T] {
	if n == nil || n.count == 0 {
		return nil
	}
	return n
}

// removeMatching implements spec.md §4.7, partial-key removal. It
// returns the updated node (n itself, unchanged, if nothing in this
// subtree matched) and how many tuples were removed.
//
// Dimension selection mirrors find's (spec.md §4.6): every bucket is
// visited when the current dimension's matcher is a wildcard,
// otherwise only the one bucket the matcher's key hashes to.
func (n *node[T]) removeMatching(owner *token, ms []matcher.Matcher[T], cfg *config) (*node[T], int) {
	m := ms[n.dim]

	var indices []int
	if m.MatchesEverything() {
		indices = allBucketIndices[:]
	} else {
		indices = []int{bucketIndexOf(m.KeyHash(n.dim, n.adapter), n.level)}
	}

	removed := 0
	var nn *node[T]

	for _, idx := range indices {
		b := n.buckets[idx]
		if !b.itemValid && b.child == nil {
			continue
		}

		if b.itemValid && matcher.MatchesAll(ms, b.item, n.adapter) {
			if nn == nil {
				nn = n.mutableCopy(owner)
			}
			if b.child == nil {
				nn.buckets[idx] = bucket[T]{}
				removed++
				continue
			}

			newChild, childRemoved := b.child.removeMatching(owner, ms, cfg)
			removed += childRemoved

			if newChild == nil || newChild.count == 0 {
				nn.buckets[idx] = bucket[T]{}
				removed++
				continue
			}

			promoted, ok := newChild.at(0)
			if !ok {
				panic("relation: child subtree reported non-zero count but at(0) found nothing")
			}
			promotedChild, _ := newChild.remove(owner, promoted, cfg)
			nn.buckets[idx] = bucket[T]{itemValid: true, item: promoted, child: emptyToNil(promotedChild)}
			removed++
			continue
		}

		if b.child != nil {
			newChild, childRemoved := b.child.removeMatching(owner, ms, cfg)
			if childRemoved > 0 {
				if nn == nil {
					nn = n.mutableCopy(owner)
				}
				nn.buckets[idx].child = emptyToNil(newChild)
			}
			removed += childRemoved
		}
	}

	if nn == nil {
		return n, 0
	}
	nn.count -= removed
	return nn, removed
}

var allBucketIndices = func() [bucketCount]int {
	var idx [bucketCount]int
	for i := range idx {
		idx[i] = i
	}
	return idx
}()
