// Package fixtures builds synthetic ppf files for the test suites.
package fixtures

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	titleLen     = 32
	arrayNameLen = 8
)

// FileSpec describes a ppf file to synthesize.
type FileSpec struct {
	Title            string
	ZoneCount        int
	GroupCount       int
	RegionBoundaries []int
	ArrayNames       []string
	Dumps            []DumpSpec
}

// DumpSpec describes one dump record. Arrays are in declaration order
// and each inner slice is written verbatim, so a deliberately wrong
// extent produces a deliberately malformed file.
type DumpSpec struct {
	Cycle  int
	Time   float64
	Arrays [][]float64
}

// HeaderSize returns the byte length of the header Build would write.
func (s FileSpec) HeaderSize() int {
	return titleLen + 4*5 + 4*len(s.RegionBoundaries) + arrayNameLen*len(s.ArrayNames)
}

// DumpSize returns the byte length of the i-th dump record.
func (s FileSpec) DumpSize(i int) int {
	n := 4 + 8
	for _, values := range s.Dumps[i].Arrays {
		n += 8 * len(values)
	}
	return n
}

// Build renders the spec as a binary ppf image.
func Build(s FileSpec) []byte {
	var buf bytes.Buffer

	buf.Write(padText(s.Title, titleLen))
	writeInt32(&buf, int32(s.ZoneCount))
	writeInt32(&buf, int32(len(s.RegionBoundaries)))
	writeInt32(&buf, int32(s.GroupCount))
	writeInt32(&buf, int32(len(s.ArrayNames)))
	writeInt32(&buf, int32(len(s.Dumps)))
	for _, b := range s.RegionBoundaries {
		writeInt32(&buf, int32(b))
	}
	for _, name := range s.ArrayNames {
		buf.Write(padText(name, arrayNameLen))
	}

	for _, dump := range s.Dumps {
		writeInt32(&buf, int32(dump.Cycle))
		writeFloat64(&buf, dump.Time)
		for _, values := range dump.Arrays {
			for _, v := range values {
				writeFloat64(&buf, v)
			}
		}
	}

	return buf.Bytes()
}

// SampleSpec is a small well-formed problem: 4 zones, 2 regions, PRES
// and R dumped at three times.
func SampleSpec() FileSpec {
	return FileSpec{
		Title:            "SAMPLE SLAB DRIVE",
		ZoneCount:        4,
		GroupCount:       0,
		RegionBoundaries: []int{0, 2},
		ArrayNames:       []string{"PRES", "R"},
		Dumps: []DumpSpec{
			{
				Cycle:  10,
				Time:   0.0,
				Arrays: [][]float64{{1.0, 2.0, 3.0, 4.0}, {0.0, 0.1, 0.2, 0.3, 0.4}},
			},
			{
				Cycle:  250,
				Time:   1e-9,
				Arrays: [][]float64{{1.5, 2.5, 3.5, 4.5}, {0.0, 0.11, 0.22, 0.33, 0.44}},
			},
			{
				Cycle:  512,
				Time:   2e-9,
				Arrays: [][]float64{{2.0, 3.0, 4.0, 5.0}, {0.0, 0.12, 0.24, 0.36, 0.48}},
			},
		},
	}
}

// RichSpec dumps one array of every size class that resolves without a
// group count, plus the photon-group quantities with a recorded count.
func RichSpec() FileSpec {
	return FileSpec{
		Title:            "LAYERED TARGET FULL DUMP",
		ZoneCount:        3,
		GroupCount:       2,
		RegionBoundaries: []int{0, 1},
		ArrayNames:       []string{"RHO", "U", "IREG", "REGMAS", "ELASER", "PHGRPBND", "PHGRPCEN"},
		Dumps: []DumpSpec{
			{
				Cycle: 1,
				Time:  5e-10,
				Arrays: [][]float64{
					{8.9, 8.9, 0.3},      // RHO, zone
					{0, -1e5, -2e5, 0},   // U, zone boundary
					{1, 2, 2},            // IREG, zone
					{2.5e-6, 4e-7},       // REGMAS, region
					{12.5},               // ELASER, scalar
					{0.1, 1.0, 10.0},     // PHGRPBND, group boundary
					{0.55, 5.5},          // PHGRPCEN, group
				},
			},
		},
	}
}

func padText(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)
	for i := len(s); i < n; i++ {
		buf[i] = ' '
	}
	return buf
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func writeFloat64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}
