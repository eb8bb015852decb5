// Package decoder turns the bytes of a ppf file into an immutable
// array catalog. Decoding is a single forward pass: any failure aborts
// the whole load, because array extents are positionally interdependent
// within a dump record and a misaligned read would silently corrupt
// every later field.
package decoder

import (
	"fmt"
	"io"
	"os"

	"github.com/heliosim/ppf-tool/internal/catalog"
	"github.com/heliosim/ppf-tool/internal/reader"
	"github.com/heliosim/ppf-tool/internal/rules"
	"github.com/heliosim/ppf-tool/internal/types"
)

const (
	titleLen     = 32 // fixed-width problem title
	arrayNameLen = 8  // fixed-width array name entries
)

// Decoder decodes ppf files against a size-rule registry.
type Decoder struct {
	rules *rules.Registry
}

// New creates a Decoder using the given registry. Pass rules.Builtin()
// unless a site-specific table is needed.
func New(reg *rules.Registry) *Decoder {
	return &Decoder{rules: reg}
}

// DecodeFile decodes the ppf file at path. The file handle is held
// only for the duration of this call.
func (d *Decoder) DecodeFile(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ppf file: %w", err)
	}
	return d.DecodeBytes(data)
}

// Decode decodes a ppf stream from src, consuming it to EOF.
func (d *Decoder) Decode(src io.Reader) (*catalog.Catalog, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read ppf stream: %w", err)
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes an in-memory ppf image. It is pure: the same
// bytes always yield the same catalog or the same error.
func (d *Decoder) DecodeBytes(data []byte) (*catalog.Catalog, error) {
	r := reader.New(data)

	meta, ndumps, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	// Resolve every declared array's extent before touching dump data,
	// so an unknown or unresolvable quantity stops the load up front.
	arrays := make([]catalog.ArrayInfo, len(meta.ArrayNames))
	for i, name := range meta.ArrayNames {
		class, err := d.rules.Class(name)
		if err != nil {
			return nil, err
		}
		extent, err := d.rules.Extent(name, meta)
		if err != nil {
			return nil, err
		}
		arrays[i] = catalog.ArrayInfo{Name: name, Class: class, Extent: extent}
	}

	dumps := make([]*types.Dump, 0, ndumps)
	for i := 0; i < ndumps; i++ {
		dump, err := parseDump(r, arrays)
		if err != nil {
			return nil, err
		}
		dumps = append(dumps, dump)
	}
	if !r.AtEnd() {
		return nil, &types.HeaderCorruptError{
			Field:  "ndumps",
			Reason: fmt.Sprintf("declared %d dumps but %d bytes follow the last record", ndumps, r.Remaining()),
		}
	}

	return catalog.New(meta, arrays, dumps), nil
}

// parseHeader reads the file-level metadata block and validates its
// structural invariants. It returns the metadata and the declared
// dump count.
func parseHeader(r *reader.Reader) (*types.ProblemMetadata, int, error) {
	title, err := r.ReadFixedText(titleLen)
	if err != nil {
		return nil, 0, err
	}

	nzone, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	if nzone <= 0 {
		return nil, 0, &types.HeaderCorruptError{
			Field:  "nzone",
			Reason: fmt.Sprintf("zone count must be positive, got %d", nzone),
		}
	}

	nreg, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	if nreg < 0 || nreg > nzone {
		return nil, 0, &types.HeaderCorruptError{
			Field:  "nreg",
			Reason: fmt.Sprintf("region count %d outside [0, %d]", nreg, nzone),
		}
	}

	ngroup, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	if ngroup < 0 {
		return nil, 0, &types.HeaderCorruptError{
			Field:  "ngroup",
			Reason: fmt.Sprintf("photon group count must not be negative, got %d", ngroup),
		}
	}

	narrays, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	if narrays < 0 {
		return nil, 0, &types.HeaderCorruptError{
			Field:  "narrays",
			Reason: fmt.Sprintf("array count must not be negative, got %d", narrays),
		}
	}

	ndumps, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	if ndumps < 0 {
		return nil, 0, &types.HeaderCorruptError{
			Field:  "ndumps",
			Reason: fmt.Sprintf("dump count must not be negative, got %d", ndumps),
		}
	}

	boundaries := make([]int, nreg)
	for i := range boundaries {
		b, err := r.ReadInt32()
		if err != nil {
			return nil, 0, err
		}
		if b < 0 || b > nzone {
			return nil, 0, &types.HeaderCorruptError{
				Field:  "region boundaries",
				Reason: fmt.Sprintf("boundary %d is zone %d, outside [0, %d]", i, b, nzone),
			}
		}
		if i > 0 && int(b) < boundaries[i-1] {
			return nil, 0, &types.HeaderCorruptError{
				Field:  "region boundaries",
				Reason: fmt.Sprintf("boundary %d (zone %d) precedes boundary %d (zone %d)", i, b, i-1, boundaries[i-1]),
			}
		}
		boundaries[i] = int(b)
	}

	names := make([]string, narrays)
	for i := range names {
		name, err := r.ReadFixedText(arrayNameLen)
		if err != nil {
			return nil, 0, err
		}
		if name == "" {
			return nil, 0, &types.HeaderCorruptError{
				Field:  "array names",
				Reason: fmt.Sprintf("name entry %d is blank", i),
			}
		}
		names[i] = name
	}

	meta := &types.ProblemMetadata{
		Title:            title,
		ZoneCount:        int(nzone),
		GroupCount:       int(ngroup),
		RegionBoundaries: boundaries,
		ArrayNames:       names,
	}
	return meta, int(ndumps), nil
}

// parseDump reads one timestep record: cycle, time, then every
// declared array at its resolved extent, in declaration order.
func parseDump(r *reader.Reader, infos []catalog.ArrayInfo) (*types.Dump, error) {
	cycle, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	time, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}

	arrays := make(map[string][]float64, len(infos))
	for _, info := range infos {
		values, err := r.ReadFloat64Array(info.Extent)
		if err != nil {
			return nil, err
		}
		arrays[info.Name] = values
	}

	return &types.Dump{Cycle: int(cycle), Time: time, Arrays: arrays}, nil
}
