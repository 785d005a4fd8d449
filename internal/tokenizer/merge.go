package tokenizer

// Merge returns a copy of ids with every non-overlapping occurrence of p,
// scanned left to right, replaced by id. After a match the scan resumes two
// positions later, so [4 4 4] merging (4, 4) yields [id 4].
func Merge(ids []int32, p Pair, id int32) []int32 {
	if len(ids) < 2 {
		return ids
	}

	out := make([]int32, 0, len(ids))
	for i := 0; i < len(ids); {
		if i+1 < len(ids) && ids[i] == p.Left && ids[i+1] == p.Right {
			out = append(out, id)
			i += 2
			continue
		}
		out = append(out, ids[i])
		i++
	}
	return out
}
