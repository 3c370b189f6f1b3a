// Package hierarchy separates holes from outer shells in an offset result.
//
// An inward offset of a closed shape produces the shrunken loops together
// with the residual outer shell. Resolve nests the loops by area, winding
// and containment; Holes keeps only the nested ones.
package hierarchy

import (
	"sort"

	"github.com/gogpu/offset/geom"
)

// Entry is one loop of a resolved result.
type Entry struct {
	Path   geom.Path
	Area   float64 // signed, scaled units squared
	Level  int
	Parent int // index into the resolved slice, -1 when top-level
}

// Resolve sorts paths by descending absolute area and assigns each loop the
// closest larger loop of opposite winding that contains all of its vertices.
func Resolve(paths geom.Paths) []Entry {
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		entries = append(entries, Entry{Path: p, Area: p.SignedArea(), Parent: -1})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return geom.Abs(entries[i].Area) > geom.Abs(entries[j].Area)
	})

	for i := 1; i < len(entries); i++ {
		cur := &entries[i]
		for j := i - 1; j >= 0; j-- {
			cand := entries[j]
			if geom.Abs(cand.Area) <= geom.Abs(cur.Area) {
				continue
			}
			if geom.Sign(cand.Area) == geom.Sign(cur.Area) {
				continue
			}
			if !cand.Path.ContainsAll(cur.Path) {
				continue
			}
			cur.Parent = j
			cur.Level = cand.Level + 1
			break
		}
	}
	return entries
}

// Holes returns the paths of entries with a parent, in resolved order.
func Holes(entries []Entry) geom.Paths {
	var out geom.Paths
	for _, e := range entries {
		if e.Parent >= 0 {
			out = append(out, e.Path)
		}
	}
	return out
}

// Filter resolves paths and returns only the nested loops. Results with at
// most one loop are returned unchanged.
func Filter(paths geom.Paths) geom.Paths {
	if len(paths) <= 1 {
		return paths
	}
	return Holes(Resolve(paths))
}
