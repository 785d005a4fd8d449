package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountPairs(t *testing.T) {
	tests := []struct {
		name string
		ids  []int32
		want map[Pair]int
	}{
		{
			name: "empty",
			ids:  nil,
			want: map[Pair]int{},
		},
		{
			name: "single id",
			ids:  []int32{7},
			want: map[Pair]int{},
		},
		{
			name: "distinct pairs",
			ids:  []int32{1, 2, 3},
			want: map[Pair]int{{1, 2}: 1, {2, 3}: 1},
		},
		{
			name: "overlapping run counts every window",
			ids:  []int32{4, 4, 4, 4},
			want: map[Pair]int{{4, 4}: 3},
		},
		{
			name: "repeated pair",
			ids:  []int32{1, 2, 1, 2, 1},
			want: map[Pair]int{{1, 2}: 2, {2, 1}: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountPairs(tt.ids))
		})
	}
}

func TestMostFrequent(t *testing.T) {
	t.Run("highest count wins", func(t *testing.T) {
		p, c := mostFrequent(map[Pair]int{{1, 2}: 3, {0, 0}: 1, {5, 5}: 2})
		assert.Equal(t, Pair{1, 2}, p)
		assert.Equal(t, 3, c)
	})

	t.Run("ties go to the smallest pair", func(t *testing.T) {
		counts := map[Pair]int{{9, 1}: 2, {3, 8}: 2, {3, 4}: 2, {10, 0}: 2}
		for n := 0; n < 20; n++ {
			p, c := mostFrequent(counts)
			assert.Equal(t, Pair{3, 4}, p)
			assert.Equal(t, 2, c)
		}
	})

	t.Run("no pairs", func(t *testing.T) {
		_, c := mostFrequent(map[Pair]int{})
		assert.Zero(t, c)
	})
}

func TestPair_Less(t *testing.T) {
	assert.True(t, Pair{1, 9}.Less(Pair{2, 0}))
	assert.True(t, Pair{1, 2}.Less(Pair{1, 3}))
	assert.False(t, Pair{1, 3}.Less(Pair{1, 3}))
	assert.False(t, Pair{2, 0}.Less(Pair{1, 9}))
	assert.Equal(t, "(3, 4)", Pair{3, 4}.String())
}
