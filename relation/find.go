package relation

import (
	"iter"

	"github.com/c80k/immutablerelations/matcher"
)

// nodeStack is a small slice-backed stack of work-list nodes, the
// generic descendant of hamt32/path.go's pathT (push/pop/peek/isEmpty
// over a []tableI) -- reused here to drive Find's iteration instead of
// Add/Remove's path-stack replay, since Find has no result to persist
// back up, only nodes left to visit.
type nodeStack[T any] struct {
	items []*node[T]
}

func (s *nodeStack[T]) push(n *node[T]) {
	if n != nil {
		s.items = append(s.items, n)
	}
}

func (s *nodeStack[T]) pop() *node[T] {
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s *nodeStack[T]) empty() bool {
	return len(s.items) == 0
}

// find implements spec.md §4.6: an iterative, explicit-work-stack walk
// that visits every bucket when the current node's dimension matcher
// is a wildcard, or only the one matching bucket otherwise, yielding
// every inline tuple that satisfies every matcher across all
// dimensions.
func (n *node[T]) find(ms []matcher.Matcher[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n == nil {
			return
		}
		var stack nodeStack[T]
		stack.push(n)

		for !stack.empty() {
			cur := stack.pop()
			m := ms[cur.dim]

			if m.MatchesEverything() {
				for i := range cur.buckets {
					b := &cur.buckets[i]
					if b.itemValid && matcher.MatchesAll(ms, b.item, cur.adapter) {
						if !yield(b.item) {
							return
						}
					}
					stack.push(b.child)
				}
				continue
			}

			idx := bucketIndexOf(m.KeyHash(cur.dim, cur.adapter), cur.level)
			b := &cur.buckets[idx]
			if b.itemValid && matcher.MatchesAll(ms, b.item, cur.adapter) {
				if !yield(b.item) {
					return
				}
			}
			stack.push(b.child)
		}
	}
}
