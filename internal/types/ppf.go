package types

import "fmt"

// SizeClass identifies how many values an array occupies within one dump
// record. The extent of most classes follows from ProblemMetadata.
type SizeClass int

const (
	// SizeZone arrays hold one value per computational zone.
	SizeZone SizeClass = iota
	// SizeZoneBoundary arrays hold one value per zone boundary (nzone + 1).
	SizeZoneBoundary
	// SizeRegion arrays hold one value per material region.
	SizeRegion
	// SizePhotonGroup arrays hold one value per photon energy group.
	SizePhotonGroup
	// SizePhotonGroupBoundary arrays hold one value per photon group
	// boundary (ngroup + 1).
	SizePhotonGroupBoundary
	// SizeScalar arrays hold a single global value.
	SizeScalar
)

// String returns the string representation of SizeClass.
func (c SizeClass) String() string {
	switch c {
	case SizeZone:
		return "zone"
	case SizeZoneBoundary:
		return "zone-boundary"
	case SizeRegion:
		return "region"
	case SizePhotonGroup:
		return "photon-group"
	case SizePhotonGroupBoundary:
		return "photon-group-boundary"
	case SizeScalar:
		return "scalar"
	default:
		return fmt.Sprintf("size-class-%d", int(c))
	}
}

// ProblemMetadata holds the file-level description of the simulated
// problem. It is populated once from the file header and never mutated
// afterwards.
type ProblemMetadata struct {
	Title            string
	ZoneCount        int
	GroupCount       int   // photon energy groups; 0 when not recorded
	RegionBoundaries []int // zone indices marking region starts
	ArrayNames       []string
}

// RegionCount returns the number of material regions in the problem.
func (m *ProblemMetadata) RegionCount() int {
	return len(m.RegionBoundaries)
}

// Dump holds one simulation timestep snapshot: the cycle number, the
// simulation time in seconds and the values of every declared array.
// Dumps are created in file order during decode and never mutated.
type Dump struct {
	Cycle  int
	Time   float64
	Arrays map[string][]float64
}

// CatalogStats summarizes a decoded catalog for display surfaces.
type CatalogStats struct {
	Title         string
	DumpCount     int
	ZoneCount     int
	RegionCount   int
	ArrayCount    int
	ArraysByClass map[SizeClass]int
	TimeRange     struct {
		Start float64
		End   float64
	}
}
