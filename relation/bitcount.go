package relation

// popcount8 returns the number of set bits in the low 8 bits of n. It
// is the bucket-occupancy narrowing of hamt32/bitcount32.go's
// bitCount32 (itself credited there to jddixon/xlUtil_go's software
// POPCNT implementation): that function counted live entries in a
// 32-bit nodeMap to find a slot's position in a compacted node slice.
// This module has no compacted slice to index into -- every node is a
// fixed [8]bucket array (spec.md §9) -- so popcount8 is repurposed
// purely as an occupancy-density signal in node.String (and so in the
// LongString dumps), the direct descendant of the teacher's
// GradeTables-driven table upgrade/downgrade decision. The
// WithOccupancyLogging breadcrumbs do not include it.
func popcount8(n uint8) int {
	n = n - ((n >> 1) & 0x55)
	n = (n & 0x33) + ((n >> 2) & 0x33)
	return int((n + (n >> 4)) & 0x0f)
}

// occupancyBitmap returns a bitmap with bit i set iff buckets[i] holds
// an inline tuple.
func occupancyBitmap[T any](buckets [bucketCount]bucket[T]) uint8 {
	var bm uint8
	for i := range buckets {
		if buckets[i].itemValid {
			bm |= 1 << uint(i)
		}
	}
	return bm
}
