package engine

import "math/bits"

func popcount(x uint64) int       { return bits.OnesCount64(x) }
func trailingZeros(x uint64) int  { return bits.TrailingZeros64(x) }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
