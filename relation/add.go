package relation

// add implements spec.md §4.4. It returns the (possibly new) node and
// whether the tuple count under n grew; when it returns false the
// returned node IS n (no allocation), giving Add its "no-op returns
// the original" identity per spec.md §4.4's "Result freshness".
//
// Grounded on hamt32/hamt.go's Put: the same three-way split drives
// both --  empty slot / matching occupant (idempotent) / occupied by
// something else (fork or descend into a child) -- generalized from a
// single cached key-hashcode comparison to adapter.Equal over the
// current dimension's bucket.
func (n *node[T]) add(owner *token, t T, cfg *config) (*node[T], bool) {
	idx := n.bucketIndexForTuple(t)
	b := n.buckets[idx]

	if !b.itemValid {
		nn := n.mutableCopy(owner)
		nn.buckets[idx] = bucket[T]{itemValid: true, item: t}
		nn.count++
		cfg.logOccupancy("relation: node dim=%d level=%d bucket=%d now inline-occupied", n.dim, n.level, idx)
		return nn, true
	}

	if n.adapter.Equal(b.item, t) {
		return n, false
	}

	if b.child == nil {
		childDim, childLevel := nextDimLevel(n.dim, n.level, n.adapter.Rank())
		child := newNode[T](n.adapter, childDim, childLevel, owner)
		child, _ = child.add(owner, t, cfg)

		nn := n.mutableCopy(owner)
		nn.buckets[idx].child = child
		nn.count++
		cfg.logOccupancy("relation: node dim=%d level=%d bucket=%d forked a child", n.dim, n.level, idx)
		return nn, true
	}

	newChild, grew := b.child.add(owner, t, cfg)
	if !grew {
		return n, false
	}

	nn := n.mutableCopy(owner)
	nn.buckets[idx].child = newChild
	nn.count++
	return nn, true
}
