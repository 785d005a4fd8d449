package tokenizer

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MergeTable maps a pair to the ID minted for it, remembering the order the
// merges were learned in. The minted ID doubles as the merge rank: lower IDs
// were learned earlier and are applied first when encoding.
type MergeTable struct {
	m *orderedmap.OrderedMap[Pair, int32]
}

// NewMergeTable returns an empty merge table.
func NewMergeTable() *MergeTable {
	return &MergeTable{m: orderedmap.New[Pair, int32]()}
}

// Rank returns the ID minted for p, or false if p was never merged.
func (t *MergeTable) Rank(p Pair) (int32, bool) {
	return t.m.Get(p)
}

// Len returns the number of merges.
func (t *MergeTable) Len() int {
	return t.m.Len()
}

// Each calls fn for every merge in learn order.
func (t *MergeTable) Each(fn func(p Pair, id int32)) {
	for el := t.m.Oldest(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

func (t *MergeTable) add(p Pair, id int32) {
	t.m.Set(p, id)
}
