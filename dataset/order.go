package dataset

import (
	"fmt"
	"strings"
)

// OrderByDependencies returns ds with tables ordered so that every table follows the
// tables it references. deps maps a table name to the names of its parents; names not
// in ds and self references are ignored. Ties keep dataset order. A cycle yields
// ErrDependencyCycle.
func OrderByDependencies(ds *Dataset, deps map[string][]string) (*Dataset, error) {
	n := len(ds.tables)
	inDegree := make([]int, n)
	children := make([][]int, n)

	for name, parents := range deps {
		child, ok := ds.index[ds.policy.Key(name)]
		if !ok {
			continue
		}
		seen := make(map[int]bool, len(parents))
		for _, p := range parents {
			parent, ok := ds.index[ds.policy.Key(p)]
			if !ok || parent == child || seen[parent] {
				continue
			}
			seen[parent] = true
			children[parent] = append(children[parent], child)
			inDegree[child]++
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i := 0; i < n; i++ {
				if !done[i] {
					stuck = append(stuck, ds.tables[i].Name())
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, c := range children[next] {
			inDegree[c]--
		}
	}
	return ds.reordered(order), nil
}
