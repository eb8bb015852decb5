package fixtures

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// CreateSampleFile writes the SampleSpec image to dir.
func CreateSampleFile(dir string) (string, error) {
	return writeFile(dir, "sample.ppf", Build(SampleSpec()))
}

// CreateRichFile writes the RichSpec image to dir.
func CreateRichFile(dir string) (string, error) {
	return writeFile(dir, "rich.ppf", Build(RichSpec()))
}

// CreateTruncatedFile writes the sample image cut off mid-way through
// the second dump record.
func CreateTruncatedFile(dir string) (string, error) {
	spec := SampleSpec()
	image := Build(spec)
	cut := spec.HeaderSize() + spec.DumpSize(0) + spec.DumpSize(1)/2
	return writeFile(dir, "truncated.ppf", image[:cut])
}

// CreateHeaderCorruptFile writes a file whose header declares zero
// zones.
func CreateHeaderCorruptFile(dir string) (string, error) {
	spec := SampleSpec()
	spec.ZoneCount = 0
	spec.Dumps = nil
	return writeFile(dir, "zero_zones.ppf", Build(spec))
}

// CreateUnknownArrayFile writes a file declaring an array no size rule
// covers.
func CreateUnknownArrayFile(dir string) (string, error) {
	spec := SampleSpec()
	spec.ArrayNames = append(spec.ArrayNames, "XWIGGLE")
	spec.Dumps = nil
	return writeFile(dir, "unknown_array.ppf", Build(spec))
}

// CreateUnresolvedGroupFile writes a file declaring photon-group
// quantities without a recorded group count.
func CreateUnresolvedGroupFile(dir string) (string, error) {
	spec := SampleSpec()
	spec.GroupCount = 0
	spec.ArrayNames = append(spec.ArrayNames, "PHGRPCEN")
	spec.Dumps = nil
	return writeFile(dir, "no_group_count.ppf", Build(spec))
}

// CreateMalformedNumberFile writes the sample image with the first
// PRES value of the first dump replaced by a NaN encoding.
func CreateMalformedNumberFile(dir string) (string, error) {
	spec := SampleSpec()
	image := Build(spec)
	offset := spec.HeaderSize() + 4 + 8 // past cycle and time
	binary.LittleEndian.PutUint64(image[offset:offset+8], 0x7ff8000000000001)
	return writeFile(dir, "malformed.ppf", image)
}

// CreateTrailingBytesFile writes the sample image with stray bytes
// after the final declared dump.
func CreateTrailingBytesFile(dir string) (string, error) {
	image := Build(SampleSpec())
	image = append(image, 0xde, 0xad, 0xbe, 0xef)
	return writeFile(dir, "trailing.ppf", image)
}

// CreateEmptyFile writes a zero-byte file.
func CreateEmptyFile(dir string) (string, error) {
	return writeFile(dir, "empty.ppf", nil)
}

func writeFile(dir, name string, image []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("write fixture %s: %w", name, err)
	}
	return path, nil
}
