// Package catalog is the read-only query surface over a decoded ppf
// file. A Catalog is built once by the decoder and never mutated, so
// it is safe for concurrent readers without locking.
package catalog

import (
	"fmt"
	"math"

	"github.com/heliosim/ppf-tool/internal/types"
)

// ArrayInfo describes one declared array: its resolved size class and
// the extent every dump stores for it.
type ArrayInfo struct {
	Name   string
	Class  types.SizeClass
	Extent int
}

// Catalog holds the problem metadata and every dump of a ppf file, in
// file order. File order is the time axis.
type Catalog struct {
	meta   *types.ProblemMetadata
	arrays []ArrayInfo
	byName map[string]ArrayInfo
	dumps  []*types.Dump
}

// New builds a catalog. The decoder is the only intended caller; arrays
// must be in declaration order with extents already resolved.
func New(meta *types.ProblemMetadata, arrays []ArrayInfo, dumps []*types.Dump) *Catalog {
	byName := make(map[string]ArrayInfo, len(arrays))
	for _, info := range arrays {
		byName[info.Name] = info
	}
	return &Catalog{meta: meta, arrays: arrays, byName: byName, dumps: dumps}
}

// Title returns the problem title from the file header.
func (c *Catalog) Title() string {
	return c.meta.Title
}

// ZoneCount returns the number of computational zones.
func (c *Catalog) ZoneCount() int {
	return c.meta.ZoneCount
}

// GroupCount returns the photon group count, 0 when the file did not
// record one.
func (c *Catalog) GroupCount() int {
	return c.meta.GroupCount
}

// DumpCount returns the number of dumps read from the file.
func (c *Catalog) DumpCount() int {
	return len(c.dumps)
}

// RegionBoundaries returns a copy of the zone indices marking region
// starts.
func (c *Catalog) RegionBoundaries() []int {
	out := make([]int, len(c.meta.RegionBoundaries))
	copy(out, c.meta.RegionBoundaries)
	return out
}

// ListArrays returns every array name with a resolved size rule, in
// declaration order.
func (c *Catalog) ListArrays() []string {
	names := make([]string, len(c.arrays))
	for i, info := range c.arrays {
		names[i] = info.Name
	}
	return names
}

// Info returns the size class and extent of a declared array.
func (c *Catalog) Info(name string) (ArrayInfo, error) {
	info, ok := c.byName[name]
	if !ok {
		return ArrayInfo{}, &types.UnknownArrayError{Name: name}
	}
	return info, nil
}

// Dump returns the i-th dump in file order.
func (c *Catalog) Dump(i int) (*types.Dump, error) {
	if i < 0 || i >= len(c.dumps) {
		return nil, fmt.Errorf("dump index %d out of range [0, %d)", i, len(c.dumps))
	}
	return c.dumps[i], nil
}

// Collect assembles one named array across all dumps into a fresh
// table shaped [extent][dump count]: row is the spatial index, column
// is the dump index in file order.
func (c *Catalog) Collect(name string) ([][]float64, error) {
	info, ok := c.byName[name]
	if !ok {
		return nil, &types.UnknownArrayError{Name: name}
	}
	table := make([][]float64, info.Extent)
	for row := range table {
		table[row] = make([]float64, len(c.dumps))
		for col, dump := range c.dumps {
			table[row][col] = dump.Arrays[name][row]
		}
	}
	return table, nil
}

// At returns one dump's values for a named array. The returned slice
// is a fresh copy.
func (c *Catalog) At(name string, i int) ([]float64, error) {
	if _, ok := c.byName[name]; !ok {
		return nil, &types.UnknownArrayError{Name: name}
	}
	dump, err := c.Dump(i)
	if err != nil {
		return nil, err
	}
	values := dump.Arrays[name]
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// Times returns one time stamp per dump, in file order.
func (c *Catalog) Times() []float64 {
	times := make([]float64, len(c.dumps))
	for i, dump := range c.dumps {
		times[i] = dump.Time
	}
	return times
}

// TimeIndex returns the index of the dump whose time stamp is closest
// to t. Ties go to the earlier dump.
func (c *Catalog) TimeIndex(t float64) (int, error) {
	if len(c.dumps) == 0 {
		return 0, &types.EmptyCatalogError{}
	}
	best := 0
	bestDist := math.Abs(c.dumps[0].Time - t)
	for i := 1; i < len(c.dumps); i++ {
		if dist := math.Abs(c.dumps[i].Time - t); dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best, nil
}

// Stats summarizes the catalog for display surfaces.
func (c *Catalog) Stats() *types.CatalogStats {
	stats := &types.CatalogStats{
		Title:         c.meta.Title,
		DumpCount:     len(c.dumps),
		ZoneCount:     c.meta.ZoneCount,
		RegionCount:   c.meta.RegionCount(),
		ArrayCount:    len(c.arrays),
		ArraysByClass: make(map[types.SizeClass]int),
	}
	for _, info := range c.arrays {
		stats.ArraysByClass[info.Class]++
	}
	if len(c.dumps) > 0 {
		stats.TimeRange.Start = c.dumps[0].Time
		stats.TimeRange.End = c.dumps[len(c.dumps)-1].Time
	}
	return stats
}

// Validate cross-checks the decoded data and returns human-readable
// warnings. Inconsistencies here do not invalidate the catalog; they
// flag files written by runs with known quirks, such as the region
// index drifting under ionization.
func (c *Catalog) Validate() []string {
	var warnings []string
	if _, ok := c.byName["IREG"]; ok {
		for i, dump := range c.dumps {
			distinct := make(map[float64]struct{})
			for _, v := range dump.Arrays["IREG"] {
				distinct[v] = struct{}{}
			}
			if len(distinct) != c.meta.RegionCount() {
				warnings = append(warnings, fmt.Sprintf(
					"dump %d: IREG holds %d distinct regions, header declares %d",
					i, len(distinct), c.meta.RegionCount()))
			}
		}
	}
	return warnings
}
