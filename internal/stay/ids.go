package stay

import (
	"sort"
	"strconv"
)

// lessID orders ids numerically when both are integers and lexicographically otherwise.
func lessID(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	}

	return a < b
}

// sortedUniqueIDs returns ids deduplicated and ordered with lessID.
func sortedUniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))

	var res []string

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		res = append(res, id)
	}

	sort.Slice(res, func(i, j int) bool {
		return lessID(res[i], res[j])
	})

	return res
}
