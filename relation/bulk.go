package relation

import (
	"github.com/google/uuid"

	"github.com/c80k/immutablerelations/matcher"
)

// Batch is the transient, temporarily-mutable view of a Relation's
// trie a Bulk callback operates against (spec.md §4.9). It has no
// analogue in the teacher -- github.com/lleo/go-hamt-functional's
// hamt32.Hamt has no transient mode at all, every Put/Del is a full
// persist() replay -- so Batch's shape follows the spec directly,
// built on the same token/mutableCopy machinery single-call
// Add/Remove use.
type Batch[T any] struct {
	rel   Relation[T]
	root  *node[T]
	token *token
	id    uuid.UUID
}

// ID returns an identifier unique to this batch invocation, minted
// when Bulk begins, for the same log-correlation purpose as
// Relation.ID (SPEC_FULL.md §6).
func (b *Batch[T]) ID() uuid.UUID {
	return b.id
}

// Add inserts t into the batch's transient root in place, reporting
// whether it was newly added. Nodes already owned by this batch's
// token are mutated directly; any other node touched is cloned once
// under the token the first time this batch reaches it (spec.md
// §4.9's "any touched frozen node is shallow-copied once and becomes
// token-T-owned").
func (b *Batch[T]) Add(t T) bool {
	newRoot, added := addToRoot(b.root, b.rel.adapter, b.token, t, &b.rel.cfg)
	b.root = newRoot
	return added
}

// Remove deletes t from the batch's transient root in place, reporting
// whether it was present.
func (b *Batch[T]) Remove(t T) bool {
	if b.root == nil {
		return false
	}
	newRoot, removed := b.root.remove(b.token, t, &b.rel.cfg)
	b.root = newRoot
	if removed && b.root.count == 0 {
		b.root = nil
	}
	return removed
}

// RemoveMatching deletes every tuple satisfying every matcher in ms
// from the batch's transient root in place, returning how many were
// removed.
func (b *Batch[T]) RemoveMatching(ms []matcher.Matcher[T]) int {
	checkMatchers(b.rel.adapter.Rank(), ms)
	if b.root == nil {
		return 0
	}
	newRoot, removed := b.root.removeMatching(b.token, ms, &b.rel.cfg)
	b.root = newRoot
	if b.root != nil && b.root.count == 0 {
		b.root = nil
	}
	return removed
}

// Count returns the number of tuples currently in the batch's
// transient root.
func (b *Batch[T]) Count() int {
	if b.root == nil {
		return 0
	}
	return b.root.count
}

// Bulk runs f against a temporarily-mutable view of r and returns a
// new, frozen Relation reflecting every change f made, per spec.md
// §4.9. r itself is untouched -- the batch unfreezes a private copy
// of the root (or, for a not-yet-rooted empty Relation, starts from
// nil and roots lazily on the first Add).
func (r Relation[T]) Bulk(f func(b *Batch[T])) Relation[T] {
	tok := newToken()
	root := r.root
	if root != nil {
		root = root.mutableCopy(tok)
	}

	batch := &Batch[T]{rel: r, root: root, token: tok, id: uuid.New()}
	f(batch)

	frozenRoot := freeze(batch.root, tok)
	return Relation[T]{adapter: r.adapter, root: frozenRoot, cfg: r.cfg, id: uuid.New()}
}
