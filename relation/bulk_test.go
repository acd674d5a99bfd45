package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c80k/immutablerelations/matcher"
	"github.com/c80k/immutablerelations/relation"
)

// TestBulkEquivalentToSequentialCalls checks spec.md §8's bulk
// equivalence property: a Bulk batch applying the same sequence of
// Add/Remove/RemoveMatching operations as individual Relation calls
// must produce the same resulting set of tuples.
func TestBulkEquivalentToSequentialCalls(t *testing.T) {
	a := binaryIntAdapter()

	seq := relation.Create[pair](a)
	for i := 0; i < 40; i++ {
		seq = seq.Add(pair{i, i * 3})
	}
	seq = seq.Remove(pair{5, 15})
	seq = seq.RemoveMatching([]matcher.Matcher[pair]{matcher.Equals[pair](pair{10, 0}), matcher.Any[pair]()})

	bulk := relation.Create[pair](a).Bulk(func(b *relation.Batch[pair]) {
		for i := 0; i < 40; i++ {
			b.Add(pair{i, i * 3})
		}
		b.Remove(pair{5, 15})
		b.RemoveMatching([]matcher.Matcher[pair]{matcher.Equals[pair](pair{10, 0}), matcher.Any[pair]()})
	})

	assert.Equal(t, seq.Count(), bulk.Count())
	assert.ElementsMatch(t, collect(seq.All()), collect(bulk.All()))
}

// TestBulkDoesNotMutateOriginal verifies the base Relation passed into
// Bulk is left completely untouched by the batch's operations, per
// spec.md §4.9.
func TestBulkDoesNotMutateOriginal(t *testing.T) {
	a := binaryIntAdapter()
	base := relation.Create[pair](a).Add(pair{1, 1}).Add(pair{2, 2})

	result := base.Bulk(func(b *relation.Batch[pair]) {
		b.Add(pair{3, 3})
		b.Remove(pair{1, 1})
	})

	assert.Equal(t, 2, base.Count())
	assert.ElementsMatch(t, []pair{{1, 1}, {2, 2}}, collect(base.All()))

	assert.Equal(t, 2, result.Count())
	assert.ElementsMatch(t, []pair{{2, 2}, {3, 3}}, collect(result.All()))
}

// TestBulkOnEmptyRelation exercises the not-yet-rooted case: Bulk
// called on a Relation whose root is still nil must lazily root on the
// first Add rather than panicking.
func TestBulkOnEmptyRelation(t *testing.T) {
	a := binaryIntAdapter()
	empty := relation.Create[pair](a)

	result := empty.Bulk(func(b *relation.Batch[pair]) {
		require.Equal(t, 0, b.Count())
		b.Add(pair{9, 9})
	})

	assert.Equal(t, 1, result.Count())
	assert.ElementsMatch(t, []pair{{9, 9}}, collect(result.All()))
}

// TestBulkDrainingToEmpty exercises removing every tuple inside a
// batch, leaving the resulting Relation empty rather than a stale
// zero-count root.
func TestBulkDrainingToEmpty(t *testing.T) {
	a := binaryIntAdapter()
	base := relation.Create[pair](a).Add(pair{1, 1}).Add(pair{2, 2})

	result := base.Bulk(func(b *relation.Batch[pair]) {
		assert.True(t, b.Remove(pair{1, 1}))
		assert.True(t, b.Remove(pair{2, 2}))
		assert.False(t, b.Remove(pair{2, 2}))
	})

	assert.True(t, result.IsEmpty())
	assert.Empty(t, collect(result.All()))
}

// TestBulkCountReflectsInProgressState checks that Batch.Count tracks
// additions and removals as they happen inside the callback, not just
// the final tally.
func TestBulkCountReflectsInProgressState(t *testing.T) {
	a := binaryIntAdapter()
	relation.Create[pair](a).Bulk(func(b *relation.Batch[pair]) {
		assert.Equal(t, 0, b.Count())
		b.Add(pair{1, 1})
		assert.Equal(t, 1, b.Count())
		b.Add(pair{2, 2})
		assert.Equal(t, 2, b.Count())
		b.Remove(pair{1, 1})
		assert.Equal(t, 1, b.Count())
	})
}

// TestIndependentBulksFromSameBaseDoNotInterfere builds two independent
// batches, one after the other, from the same frozen base and confirms
// their mutations don't leak into one another -- each batch's token
// owns its own copied nodes (spec.md §4.9's non-aliasing requirement).
func TestIndependentBulksFromSameBaseDoNotInterfere(t *testing.T) {
	a := binaryIntAdapter()
	base := relation.Create[pair](a).Add(pair{1, 1}).Add(pair{2, 2}).Add(pair{3, 3})

	r1 := base.Bulk(func(b *relation.Batch[pair]) {
		b.Add(pair{4, 4})
		b.Remove(pair{1, 1})
	})
	r2 := base.Bulk(func(b *relation.Batch[pair]) {
		b.Add(pair{5, 5})
		b.Remove(pair{2, 2})
	})

	assert.ElementsMatch(t, []pair{{1, 1}, {2, 2}, {3, 3}}, collect(base.All()))
	assert.ElementsMatch(t, []pair{{2, 2}, {3, 3}, {4, 4}}, collect(r1.All()))
	assert.ElementsMatch(t, []pair{{1, 1}, {3, 3}, {5, 5}}, collect(r2.All()))
}
