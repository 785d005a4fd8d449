package tokenizer

import "fmt"

// Pair is two adjacent token IDs.
type Pair struct {
	Left  int32
	Right int32
}

// Less orders pairs by Left, then Right.
func (p Pair) Less(o Pair) bool {
	if p.Left != o.Left {
		return p.Left < o.Left
	}
	return p.Right < o.Right
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Left, p.Right)
}

// CountPairs returns how often each adjacent pair occurs in ids.
func CountPairs(ids []int32) map[Pair]int {
	counts := make(map[Pair]int)
	for i := 0; i+1 < len(ids); i++ {
		counts[Pair{ids[i], ids[i+1]}]++
	}
	return counts
}

// mostFrequent picks the pair with the highest count. Equal counts resolve
// to the smallest pair so training is reproducible.
func mostFrequent(counts map[Pair]int) (Pair, int) {
	var best Pair
	bestCount := 0
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.Less(best)) {
			best = p
			bestCount = c
		}
	}
	return best, bestCount
}
