package store

import (
	"bytes"

	"github.com/google/btree"
)

// collect drains an iterator into a slice. The iterator is closed.
func collect(it Iterator) []Model {
	defer it.Close()
	var res []Model
	for ; it.Valid(); it.Next() {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}

// ascendRange returns all items of the btree within [start, end), in
// ascending order. A nil end means no upper bound.
func ascendRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// mergeItems combines the parent content with the cached changes. Both
// inputs are sorted by key. Cached items take precedence and deleted items
// hide the parent value.
func mergeItems(parent []Model, cached []btree.Item) []Model {
	res := make([]Model, 0, len(parent)+len(cached))
	i, j := 0, 0
	for i < len(parent) || j < len(cached) {
		if j == len(cached) {
			res = append(res, parent[i])
			i++
			continue
		}
		ckey := cached[j].(keyer).Key()
		if i < len(parent) {
			switch cmp := bytes.Compare(parent[i].Key, ckey); {
			case cmp < 0:
				res = append(res, parent[i])
				i++
				continue
			case cmp == 0:
				// Overwritten or deleted by the cache.
				i++
			}
		}
		if set, ok := cached[j].(setItem); ok {
			res = append(res, Model{Key: set.key, Value: set.value})
		}
		j++
	}
	return res
}
